package api

type GetPricingRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type GetPricingResponse struct {
	Defaults  []SubjectPricing `json:"defaults"`
	Overrides []SubjectPricing `json:"overrides"`
	FlatRate  float64          `json:"flatRate"`
	Source    string           `json:"source"`
}

type SetTutorPricingRequest struct {
	TutorID  string           `json:"tutorId,omitempty"`
	Subjects []SubjectPricing `json:"subjects"`
}

type SetTutorPricingResponse struct {
	Overrides []SubjectPricing `json:"overrides"`
}

type QuotePriceRequest struct {
	TutorID     string `json:"tutorId,omitempty"`
	Subject     string `json:"subject"`
	StudentName string `json:"studentName"`
}

type QuotePriceResponse struct {
	Price        float64 `json:"price"`
	StudentCount int     `json:"studentCount"`
}
