package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Simplici0/haulcalc/internal/format"
	"github.com/Simplici0/haulcalc/internal/pricing"
)

type modeOption struct {
	Value    string
	Label    string
	Selected bool
}

type calculatorViewData struct {
	baseViewData
	Form         url.Values
	Mode         pricing.HaulMode
	Modes        []modeOption
	ShowTonnage  bool
	ShowIncluded bool
	RateClass    bool
	ASAP         bool
	Rows         []pricing.Row
}

type quoteRequest struct {
	DeliveryCost float64          `json:"deliveryCost"`
	HaulCost     float64          `json:"haulCost"`
	RentCost     float64          `json:"rentCost"`
	Fuel         float64          `json:"fuel"`
	Tax          float64          `json:"tax"`
	Mode         pricing.HaulMode `json:"mode"`
	ExpectedTons float64          `json:"expectedTons"`
	MinimumTons  float64          `json:"minimumTons"`
	IncludedTons float64          `json:"includedTons"`
	TonnageCost  float64          `json:"tonnageCost"`
	RateClass    bool             `json:"rateClass"`
	ASAP         bool             `json:"asap"`
}

func (q quoteRequest) input() pricing.Input {
	return pricing.Input{
		DeliveryCost: q.DeliveryCost,
		HaulCost:     q.HaulCost,
		RentCost:     q.RentCost,
		FuelPercent:  q.Fuel,
		TaxPercent:   q.Tax,
		RateClass:    q.RateClass,
		Timing:       pricing.TimingFor(q.ASAP),
		Mode:         q.Mode,
		ExpectedTons: q.ExpectedTons,
		MinimumTons:  q.MinimumTons,
		IncludedTons: q.IncludedTons,
		TonnageCost:  q.TonnageCost,
	}
}

type quoteRow struct {
	Label  string  `json:"label"`
	CTU    float64 `json:"ctu"`
	PTC    float64 `json:"ptc"`
	CTUFmt string  `json:"ctuDisplay"`
	PTCFmt string  `json:"ptcDisplay"`
}

type quoteResponse struct {
	Mode pricing.HaulMode `json:"mode"`
	Rows []quoteRow       `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	form := r.URL.Query()
	view := newCalculatorView(form)

	in, err := pricing.ParseInput(form, s.inputMode)
	if err != nil {
		view.ErrorMessage = err.Error()
		s.renderTemplate(w, http.StatusBadRequest, "calculator.html", view)
		return
	}

	card, err := s.getRateCard(r.Context())
	if err != nil {
		s.log.Error("load rate card", zap.Error(err))
		http.Error(w, "failed to load rate card", http.StatusInternalServerError)
		return
	}

	quote := card.Quote(in)
	if err := quote.Check(); err != nil {
		view.ErrorMessage = err.Error()
		s.renderTemplate(w, http.StatusBadRequest, "calculator.html", view)
		return
	}

	view.Rows = quote.Rows()
	s.renderTemplate(w, http.StatusOK, "calculator.html", view)
}

func newCalculatorView(form url.Values) calculatorViewData {
	// An unknown mode is reported by ParseInput; the tabs fall back to flat rate.
	mode, _ := pricing.ParseHaulMode(form.Get(pricing.FieldMode))

	modes := make([]modeOption, 0, len(pricing.HaulModes))
	for _, m := range pricing.HaulModes {
		modes = append(modes, modeOption{Value: m.String(), Label: m.Label(), Selected: m == mode})
	}

	return calculatorViewData{
		Form:         form,
		Mode:         mode,
		Modes:        modes,
		ShowTonnage:  mode.UsesTonnage(),
		ShowIncluded: mode == pricing.Inclusion,
		RateClass:    pricing.ParseCheckbox(form.Get(pricing.FieldRateClass)),
		ASAP:         pricing.ParseCheckbox(form.Get(pricing.FieldASAP)),
	}
}

func (s *server) handleQuoteAPI(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	in := req.input()
	if s.inputMode == pricing.Strict {
		if err := in.Validate(); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	card, err := s.getRateCard(r.Context())
	if err != nil {
		s.log.Error("load rate card", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load rate card"})
		return
	}

	quote := card.Quote(in)
	if err := quote.Check(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rows := quote.Rows()
	resp := quoteResponse{Mode: in.Mode, Rows: make([]quoteRow, 0, len(rows))}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, quoteRow{
			Label:  row.Label,
			CTU:    row.CTU,
			PTC:    row.PTC,
			CTUFmt: format.WholeDollars(row.CTU),
			PTCFmt: format.WholeDollars(row.PTC),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// writeJSON buffers the encoded body; an encode failure becomes a 500.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("encode json response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Warn("write json response", zap.Error(err))
	}
}
