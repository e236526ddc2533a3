package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/repository"
)

// PriceBook hands out calculators that know a tutor's overrides.
type PriceBook struct {
	base *calculator.Calculator
	repo *repository.Repository
}

// NewPriceBook creates a PriceBook over a default calculator.
func NewPriceBook(base *calculator.Calculator, repo *repository.Repository) *PriceBook {
	return &PriceBook{base: base, repo: repo}
}

// For returns a calculator with tutorID's overrides installed. When the
// overrides cannot be loaded the default table is used and the failure logged.
func (p *PriceBook) For(ctx context.Context, tutorID string) *calculator.Calculator {
	pricing, _, err := p.repo.LoadPricing(ctx, tutorID)
	if err != nil {
		slog.Warn("Failed to load tutor pricing, using defaults", "tutor_id", tutorID, "error", err)
		return p.base
	}
	return p.base.WithTutorPricing(tutorID, pricing)
}

// Defaults returns the calculator without any tutor overrides.
func (p *PriceBook) Defaults() *calculator.Calculator {
	return p.base
}
