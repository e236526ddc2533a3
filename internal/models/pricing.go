package models

// PricingTier is a (minimum student count → price) threshold rule.
type PricingTier struct {
	MinStudents int `json:"minStudents" bson:"minStudents"`

	// MaxStudents is informational only; tier selection is threshold based.
	MaxStudents *int `json:"maxStudents,omitempty" bson:"maxStudents,omitempty"`

	// Price is the fee for one lesson at this tier.
	Price float64 `json:"price" bson:"price"`
}

// SubjectPricing is the tier list for one subject.
// Tiers are evaluated in ascending MinStudents order.
type SubjectPricing struct {
	Subject string        `json:"subject" bson:"subject"`
	Tiers   []PricingTier `json:"tiers" bson:"tiers"`
}

// TutorPricing maps subject name to tiers for a single tutor.
type TutorPricing map[string][]PricingTier

// PricingOverrides maps tutor ID to that tutor's pricing overrides.
type PricingOverrides map[string]TutorPricing
