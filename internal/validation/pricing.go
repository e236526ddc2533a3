package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/tutorbook/internal/models"
)

// ErrInvalidPricing wraps every pricing validation failure.
var ErrInvalidPricing = errors.New("invalid pricing")

type tierInput struct {
	MinStudents int     `json:"minStudents" validate:"gte=0"`
	MaxStudents *int    `json:"maxStudents" validate:"omitempty,gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type subjectInput struct {
	Subject string      `json:"subject" validate:"required"`
	Tiers   []tierInput `json:"tiers" validate:"gt=0,dive"`
}

// Pricing validates per-tutor overrides. Each subject needs at least one tier,
// tiers must be in ascending minStudents order, and a subject may appear once.
func Pricing(subjects []models.SubjectPricing) (models.TutorPricing, error) {
	out := make(models.TutorPricing, len(subjects))
	seen := make(map[string]bool, len(subjects))

	for _, sp := range subjects {
		in := subjectInput{Subject: strings.TrimSpace(sp.Subject)}
		for _, t := range sp.Tiers {
			in.Tiers = append(in.Tiers, tierInput(t))
		}
		if err := checkAs(ErrInvalidPricing, in); err != nil {
			return nil, err
		}

		key := strings.ToLower(in.Subject)
		if seen[key] {
			return nil, fmt.Errorf("%w: subject %q listed twice", ErrInvalidPricing, in.Subject)
		}
		seen[key] = true

		for i := 1; i < len(sp.Tiers); i++ {
			if sp.Tiers[i].MinStudents < sp.Tiers[i-1].MinStudents {
				return nil, fmt.Errorf("%w: %s tiers must be in ascending minStudents order", ErrInvalidPricing, in.Subject)
			}
		}
		out[in.Subject] = append([]models.PricingTier(nil), sp.Tiers...)
	}
	return out, nil
}
