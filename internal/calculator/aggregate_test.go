package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/tutorbook/internal/models"
)

func marchLessons() []models.Lesson {
	return []models.Lesson{
		{ID: "feb-end", Date: "2025-02-28", Time: "10:00", Subject: "English", StudentName: "A"},
		{ID: "m1", Date: "2025-03-01", Time: "10:00", Subject: "English", StudentName: "A"},
		{ID: "m2", Date: "2025-03-15", Time: "09:00", Subject: "English", StudentName: "B, C"},
		{ID: "m3", Date: "2025-03-10", Time: "12:00", Subject: "English", StudentName: "A, D"},
		{ID: "m4", Date: "2025-03-31", Time: "18:00", Subject: "English", StudentName: "A, B, C"},
		{ID: "m5", Date: "2025-03-20", Time: "11:00", Subject: "Chemistry", StudentName: "X, Y, Z, W"},
		{ID: "apr-start", Date: "2025-04-01", Time: "10:00", Subject: "English", StudentName: "A"},
		{ID: "corrupt-1", Date: "", Time: "10:00", Subject: "English", StudentName: "A"},
		{ID: "corrupt-2", Date: "03/12/2025", Time: "10:00", Subject: "English", StudentName: "A"},
	}
}

func TestAggregateFiltersToSalaryPeriod(t *testing.T) {
	calc := New(threeTiers)
	lessons := marchLessons()

	report, err := calc.Aggregate(lessons, 2025, 3, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if report.Count != 5 {
		t.Errorf("Count = %d, want 5", report.Count)
	}
	if report.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", report.Skipped)
	}

	// Sum of Price over exactly the in-period lessons.
	var want float64
	for _, l := range lessons {
		if l.Date >= "2025-03-01" && l.Date <= "2025-03-31" {
			want += calc.Price(l.Subject, l.StudentName, "")
		}
	}
	// 6 + 8 + 8 + 10 + 20
	if math.Abs(report.Total-want) > 0.001 || math.Abs(report.Total-52) > 0.001 {
		t.Errorf("Total = %v, want %v (52)", report.Total, want)
	}

	if !report.Period.Start.Equal(time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Period.Start = %v", report.Period.Start)
	}
	if !report.Period.End.Equal(time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Period.End = %v", report.Period.End)
	}
}

func TestAggregateBreakdown(t *testing.T) {
	calc := New(threeTiers)

	report, err := calc.Aggregate(marchLessons(), 2025, 3, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	type row struct {
		subject  string
		students int
		count    int
		subtotal float64
	}
	want := []row{
		{"Chemistry", 4, 1, 20},
		{"English", 1, 1, 6},
		{"English", 2, 2, 16},
		{"English", 3, 1, 10},
	}

	if len(report.Breakdown) != len(want) {
		t.Fatalf("got %d breakdown groups, want %d", len(report.Breakdown), len(want))
	}
	for i, g := range report.Breakdown {
		w := want[i]
		if g.Subject != w.subject || g.StudentCount != w.students || g.Count != w.count || math.Abs(g.Subtotal-w.subtotal) > 0.001 {
			t.Errorf("group %d = {%s %d %d %v}, want %+v", i, g.Subject, g.StudentCount, g.Count, g.Subtotal, w)
		}
		if len(g.Lessons) != g.Count {
			t.Errorf("group %d lists %d lessons, count %d", i, len(g.Lessons), g.Count)
		}
	}

	pairs := report.Breakdown[2]
	if pairs.Lessons[0].ID != "m3" || pairs.Lessons[1].ID != "m2" {
		t.Errorf("group lessons not sorted by date: %s, %s", pairs.Lessons[0].ID, pairs.Lessons[1].ID)
	}
	if !reflect.DeepEqual(pairs.Students, []string{"A", "B", "C", "D"}) {
		t.Errorf("Students = %v, want [A B C D]", pairs.Students)
	}
}

func TestAggregateUsesTutorOverrides(t *testing.T) {
	calc := New(threeTiers, WithOverrides(models.PricingOverrides{
		"tutor-1": {"English": {{MinStudents: 1, Price: 1}}},
	}))
	lessons := []models.Lesson{
		{ID: "a", Date: "2025-03-03", Time: "10:00", Subject: "English", StudentName: "A"},
		{ID: "b", Date: "2025-03-04", Time: "10:00", Subject: "English", StudentName: "A, B, C"},
	}

	withOverride, err := calc.Aggregate(lessons, 2025, 3, "tutor-1")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if withOverride.Total != 2 {
		t.Errorf("override Total = %v, want 2", withOverride.Total)
	}

	defaults, err := calc.Aggregate(lessons, 2025, 3, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if defaults.Total != 16 {
		t.Errorf("default Total = %v, want 16", defaults.Total)
	}
}

func TestAggregateInvalidMonth(t *testing.T) {
	calc := New(nil)
	for _, month := range []int{0, 13, -1} {
		if _, err := calc.Aggregate(nil, 2025, month, ""); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Aggregate(month=%d) error = %v, want ErrInvalidPeriod", month, err)
		}
	}
}

func TestAggregateEmptyMonth(t *testing.T) {
	report, err := New(nil).Aggregate(marchLessons(), 2024, 7, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if report.Total != 0 || report.Count != 0 || len(report.Breakdown) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestPeriodLeapYear(t *testing.T) {
	p, err := NewPeriod(2024, 2)
	if err != nil {
		t.Fatalf("NewPeriod failed: %v", err)
	}
	if !p.Contains(models.Lesson{Date: "2024-02-29"}) {
		t.Error("2024-02-29 should be inside February 2024")
	}
	if p.Contains(models.Lesson{Date: "2024-03-01"}) {
		t.Error("2024-03-01 should be outside February 2024")
	}
}
