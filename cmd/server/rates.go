package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/haulcalc/internal/pricing"
)

type ratesViewData struct {
	baseViewData
	// Fields holds the form values by field name, as submitted or as stored.
	Fields map[string]string
}

type rateCardField struct {
	name     string
	dst      *float64
	positive bool
}

func rateCardFields(card *pricing.RateCard) []rateCardField {
	return []rateCardField{
		{"delivery_fee_rca", &card.DeliveryFee.RateClass, false},
		{"delivery_fee_standard", &card.DeliveryFee.Standard, false},
		{"expedited_delivery_fee", &card.ExpeditedDeliveryFee, false},
		{"haul_fee_rca", &card.HaulFee.RateClass, false},
		{"haul_fee_standard", &card.HaulFee.Standard, false},
		{"markup_rca", &card.Markup.RateClass, true},
		{"markup_standard", &card.Markup.Standard, true},
		{"price_increment", &card.PriceIncrement, true},
		{"rent_increment", &card.RentIncrement, true},
	}
}

func storedFieldValues(card pricing.RateCard) map[string]string {
	values := make(map[string]string)
	for _, f := range rateCardFields(&card) {
		values[f.name] = strconv.FormatFloat(*f.dst, 'f', -1, 64)
	}
	return values
}

func submittedFieldValues(r *http.Request) map[string]string {
	values := make(map[string]string)
	for _, f := range rateCardFields(&pricing.RateCard{}) {
		values[f.name] = r.FormValue(f.name)
	}
	return values
}

func (s *server) handleAdminRatesForm(w http.ResponseWriter, r *http.Request) {
	card, err := s.getRateCard(r.Context())
	if err != nil {
		s.log.Error("load rate card", zap.Error(err))
		http.Error(w, "failed to load rate card", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "admin_rates.html", ratesViewData{Fields: storedFieldValues(card)})
}

func (s *server) handleAdminRatesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	card, validationErr := parseRateCardForm(r)
	if validationErr == nil {
		validationErr = card.Validate()
	}
	if validationErr != nil {
		s.renderTemplate(w, http.StatusBadRequest, "admin_rates.html", ratesViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			Fields:       submittedFieldValues(r),
		})
		return
	}

	if err := s.updateRateCard(r.Context(), card); err != nil {
		s.log.Error("save rate card", zap.Error(err))
		http.Error(w, "failed to save rate card", http.StatusInternalServerError)
		return
	}
	s.log.Info("rate card updated", zap.Any("rate_card", card))

	s.renderTemplate(w, http.StatusOK, "admin_rates.html", ratesViewData{
		baseViewData: baseViewData{SuccessMessage: "Rate card saved."},
		Fields:       storedFieldValues(card),
	})
}

func parseRateCardForm(r *http.Request) (pricing.RateCard, error) {
	var card pricing.RateCard
	for _, f := range rateCardFields(&card) {
		parse := parseNonNegativeFloat
		if f.positive {
			parse = parsePositiveFloat
		}
		value, err := parse(r.FormValue(f.name), f.name)
		if err != nil {
			return card, err
		}
		*f.dst = value
	}
	return card, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// getRateCard falls back to the default rate card until one has been stored.
func (s *server) getRateCard(ctx context.Context) (pricing.RateCard, error) {
	var rc pricing.RateCard
	err := s.db.QueryRowContext(ctx, `
		SELECT
			delivery_fee_rca,
			delivery_fee_standard,
			expedited_delivery_fee,
			haul_fee_rca,
			haul_fee_standard,
			markup_rca,
			markup_standard,
			price_increment,
			rent_increment
		FROM rate_card
		WHERE id = 1
	`).Scan(
		&rc.DeliveryFee.RateClass,
		&rc.DeliveryFee.Standard,
		&rc.ExpeditedDeliveryFee,
		&rc.HaulFee.RateClass,
		&rc.HaulFee.Standard,
		&rc.Markup.RateClass,
		&rc.Markup.Standard,
		&rc.PriceIncrement,
		&rc.RentIncrement,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.DefaultRateCard(), nil
		}
		return pricing.RateCard{}, fmt.Errorf("query rate_card: %w", err)
	}
	return rc, nil
}

func (s *server) updateRateCard(ctx context.Context, rc pricing.RateCard) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_card (
			id,
			delivery_fee_rca,
			delivery_fee_standard,
			expedited_delivery_fee,
			haul_fee_rca,
			haul_fee_standard,
			markup_rca,
			markup_standard,
			price_increment,
			rent_increment
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			delivery_fee_rca = excluded.delivery_fee_rca,
			delivery_fee_standard = excluded.delivery_fee_standard,
			expedited_delivery_fee = excluded.expedited_delivery_fee,
			haul_fee_rca = excluded.haul_fee_rca,
			haul_fee_standard = excluded.haul_fee_standard,
			markup_rca = excluded.markup_rca,
			markup_standard = excluded.markup_standard,
			price_increment = excluded.price_increment,
			rent_increment = excluded.rent_increment,
			updated_at = CURRENT_TIMESTAMP
	`,
		rc.DeliveryFee.RateClass,
		rc.DeliveryFee.Standard,
		rc.ExpeditedDeliveryFee,
		rc.HaulFee.RateClass,
		rc.HaulFee.Standard,
		rc.Markup.RateClass,
		rc.Markup.Standard,
		rc.PriceIncrement,
		rc.RentIncrement,
	)
	if err != nil {
		return fmt.Errorf("update rate_card: %w", err)
	}

	return nil
}
