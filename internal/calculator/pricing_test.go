package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tutorbook/internal/models"
)

var threeTiers = []models.SubjectPricing{
	{
		Subject: "English",
		Tiers: []models.PricingTier{
			{MinStudents: 1, Price: 6},
			{MinStudents: 2, Price: 8},
			{MinStudents: 3, Price: 10},
		},
	},
}

func TestStudentCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"A", 1},
		{"A, B", 2},
		{"A, B, C", 3},
		{" A ,, B , ", 2},
		{",,,", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := StudentCount(tt.raw); got != tt.want {
				t.Errorf("StudentCount(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCalculatorPrice(t *testing.T) {
	calc := New(threeTiers)

	tests := []struct {
		name     string
		subject  string
		students string
		want     float64
	}{
		{name: "exact threshold at three", subject: "English", students: "A, B, C", want: 10},
		{name: "two students", subject: "English", students: "A, B", want: 8},
		{name: "one student", subject: "English", students: "A", want: 6},
		{name: "zero students floors to first tier", subject: "English", students: "", want: 6},
		{name: "above top tier stays on top tier", subject: "English", students: "A, B, C, D, E", want: 10},
		{name: "subject match ignores case", subject: "  english ", students: "A, B", want: 8},
		{name: "unknown subject uses flat rate", subject: "Chemistry", students: "A, B, C, D", want: 20},
		{name: "unknown subject with no students", subject: "Chemistry", students: " ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Price(tt.subject, tt.students, "")
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Price(%q, %q) = %v, want %v", tt.subject, tt.students, got, tt.want)
			}
		})
	}
}

func TestCalculatorTutorOverride(t *testing.T) {
	calc := New(threeTiers, WithOverrides(models.PricingOverrides{
		"tutor-1": {
			"English": {
				{MinStudents: 1, Price: 7},
				{MinStudents: 2, Price: 11},
			},
			"Chemistry": {
				{MinStudents: 1, Price: 9},
			},
			"Empty": {},
		},
	}))

	tests := []struct {
		name     string
		subject  string
		students string
		tutorID  string
		want     float64
	}{
		{name: "override wins for the tutor", subject: "English", students: "A, B", tutorID: "tutor-1", want: 11},
		{name: "default for another tutor", subject: "English", students: "A, B", tutorID: "tutor-2", want: 8},
		{name: "default without tutor", subject: "English", students: "A, B", tutorID: "", want: 8},
		{name: "override for a subject missing from defaults", subject: "chemistry", students: "A, B, C", tutorID: "tutor-1", want: 9},
		{name: "empty override falls through to flat rate", subject: "Empty", students: "A, B", tutorID: "tutor-1", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Price(tt.subject, tt.students, tt.tutorID)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Price(%q, %q, %q) = %v, want %v", tt.subject, tt.students, tt.tutorID, got, tt.want)
			}
		})
	}
}

func TestWithTutorPricingDoesNotMutate(t *testing.T) {
	base := New(threeTiers)
	withTutor := base.WithTutorPricing("tutor-1", models.TutorPricing{
		"English": {{MinStudents: 1, Price: 100}},
	})

	if got := withTutor.Price("English", "A", "tutor-1"); got != 100 {
		t.Errorf("override price = %v, want 100", got)
	}
	if got := base.Price("English", "A", "tutor-1"); got != 6 {
		t.Errorf("base price = %v, want 6 (base calculator must be unchanged)", got)
	}
}

func TestSelectTier(t *testing.T) {
	tiers := []models.PricingTier{
		{MinStudents: 2, Price: 4},
		{MinStudents: 4, Price: 6},
	}

	tests := []struct {
		count int
		want  float64
	}{
		{0, 4},
		{1, 4},
		{2, 4},
		{3, 4},
		{4, 6},
		{9, 6},
	}

	for _, tt := range tests {
		if got := SelectTier(tiers, tt.count).Price; got != tt.want {
			t.Errorf("SelectTier(count=%d) = %v, want %v", tt.count, got, tt.want)
		}
	}

	if got := SelectTier(nil, 3); got.Price != 0 {
		t.Errorf("SelectTier(nil) = %v, want zero tier", got)
	}
}

func TestDefaultPricingTable(t *testing.T) {
	calc := New(nil)

	tests := []struct {
		subject  string
		students string
		want     float64
	}{
		{"İngilis dili", "A", 6},
		{"SAT", "A, B", 10},
		{"IELTS", "A, B, C", 12},
		{"Speaking", "A, B, C, D, E, F, G", 8},
		{"Kids", "A, B", 8},
	}

	for _, tt := range tests {
		if got := calc.Price(tt.subject, tt.students, ""); got != tt.want {
			t.Errorf("Price(%q, %q) = %v, want %v", tt.subject, tt.students, got, tt.want)
		}
	}

	if got := len(calc.Table()); got != len(DefaultPricing) {
		t.Errorf("Table() has %d subjects, want %d", got, len(DefaultPricing))
	}
}
