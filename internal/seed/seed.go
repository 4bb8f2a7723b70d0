package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/haulcalc/internal/pricing"
)

// Config contains the values required by startup seed.
type Config struct {
	RateCard pricing.RateCard
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way. Existing rows are never overwritten.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	if err := cfg.RateCard.Validate(); err != nil {
		return Stats{}, fmt.Errorf("seed rate card: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureRateCard(ctx, tx, cfg.RateCard, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateCard(ctx context.Context, tx *sql.Tx, rc pricing.RateCard, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rate_card WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate card existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
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
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
	); err != nil {
		return fmt.Errorf("insert rate card singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
