package calculator

import (
	"strings"

	"github.com/mmynk/tutorbook/internal/models"
)

// DefaultFlatRate is the per-student fee for subjects missing from the pricing table.
const DefaultFlatRate = 5.0

// DefaultPricing is the built-in per-subject pricing table.
var DefaultPricing = []models.SubjectPricing{
	{
		Subject: "İngilis dili",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 6},
			{MinStudents: 2, Price: 8},
			{MinStudents: 3, Price: 10},
		},
	},
	{
		Subject: "SAT",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 8},
			{MinStudents: 2, Price: 10},
			{MinStudents: 3, Price: 12},
		},
	},
	{
		Subject: "IELTS",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 8},
			{MinStudents: 2, Price: 10},
			{MinStudents: 3, Price: 12},
		},
	},
	{
		Subject: "Speaking",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 3},
			{MinStudents: 2, Price: 4},
			{MinStudents: 3, Price: 5},
			{MinStudents: 4, Price: 6},
			{MinStudents: 5, Price: 7},
			{MinStudents: 6, Price: 8},
		},
	},
	{
		Subject: "Kids",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 6},
			{MinStudents: 2, Price: 8},
			{MinStudents: 3, Price: 10},
		},
	},
}

// Calculator resolves per-lesson fees.
//
// Precedence for a (tutor, subject) pair:
//  1. the tutor's override tiers for the subject
//  2. the default pricing table
//  3. StudentCount * flat rate
//
// Subjects are matched case-insensitively. Calculator never fails: bad input
// degrades to a numeric default.
type Calculator struct {
	defaults  map[string][]models.PricingTier
	overrides models.PricingOverrides
	flatRate  float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithFlatRate sets the per-student fee used for unknown subjects.
func WithFlatRate(rate float64) Option {
	return func(c *Calculator) { c.flatRate = rate }
}

// WithOverrides installs per-tutor pricing overrides.
func WithOverrides(overrides models.PricingOverrides) Option {
	return func(c *Calculator) { c.overrides = overrides }
}

// New creates a Calculator over the given default table.
// A nil table means DefaultPricing.
func New(table []models.SubjectPricing, opts ...Option) *Calculator {
	if table == nil {
		table = DefaultPricing
	}
	c := &Calculator{
		defaults: make(map[string][]models.PricingTier, len(table)),
		flatRate: DefaultFlatRate,
	}
	for _, sp := range table {
		c.defaults[subjectKey(sp.Subject)] = sp.Tiers
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTutorPricing returns a copy of c that also knows the overrides of one tutor.
func (c *Calculator) WithTutorPricing(tutorID string, pricing models.TutorPricing) *Calculator {
	clone := *c
	clone.overrides = make(models.PricingOverrides, len(c.overrides)+1)
	for id, p := range c.overrides {
		clone.overrides[id] = p
	}
	clone.overrides[tutorID] = pricing
	return &clone
}

// FlatRate returns the per-student fee for unknown subjects.
func (c *Calculator) FlatRate() float64 {
	return c.flatRate
}

// Price returns the fee for one lesson given its raw comma-separated student names.
func (c *Calculator) Price(subject, studentNames, tutorID string) float64 {
	return c.PriceForCount(subject, StudentCount(studentNames), tutorID)
}

// PriceForCount returns the fee for one lesson with count students.
func (c *Calculator) PriceForCount(subject string, count int, tutorID string) float64 {
	if tiers, ok := c.Tiers(subject, tutorID); ok {
		return SelectTier(tiers, count).Price
	}
	return float64(count) * c.flatRate
}

// Tiers returns the tier list that applies to subject for tutorID.
// ok is false when the subject falls back to the flat rate.
func (c *Calculator) Tiers(subject, tutorID string) (tiers []models.PricingTier, ok bool) {
	key := subjectKey(subject)
	if tutorID != "" {
		if tiers := lookupOverride(c.overrides[tutorID], key); len(tiers) > 0 {
			return tiers, true
		}
	}
	if tiers := c.defaults[key]; len(tiers) > 0 {
		return tiers, true
	}
	return nil, false
}

// Table returns the default pricing table in a stable order.
func (c *Calculator) Table() []models.SubjectPricing {
	out := make([]models.SubjectPricing, 0, len(DefaultPricing))
	for _, sp := range DefaultPricing {
		if tiers, ok := c.defaults[subjectKey(sp.Subject)]; ok {
			out = append(out, models.SubjectPricing{Subject: sp.Subject, Tiers: tiers})
		}
	}
	return out
}

// StudentCount counts the non-empty comma-separated names in raw.
func StudentCount(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	count := 0
	for _, name := range strings.Split(raw, ",") {
		if strings.TrimSpace(name) != "" {
			count++
		}
	}
	return count
}

// StudentNames returns the trimmed, non-empty names in raw.
func StudentNames(raw string) []string {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SelectTier walks tiers in order and keeps the last one whose threshold is met,
// stopping at the first unmet threshold. The first tier is a floor: it is
// returned even when count is below every threshold.
func SelectTier(tiers []models.PricingTier, count int) models.PricingTier {
	if len(tiers) == 0 {
		return models.PricingTier{}
	}
	selected := tiers[0]
	for _, tier := range tiers {
		if count < tier.MinStudents {
			break
		}
		selected = tier
	}
	return selected
}

func lookupOverride(pricing models.TutorPricing, key string) []models.PricingTier {
	if pricing == nil {
		return nil
	}
	if tiers, ok := pricing[key]; ok {
		return tiers
	}
	for subject, tiers := range pricing {
		if subjectKey(subject) == key {
			return tiers
		}
	}
	return nil
}

func subjectKey(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}
