package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/models"
)

func sampleReport(t *testing.T) calculator.MonthlyReport {
	t.Helper()
	lessons := []models.Lesson{
		{ID: "1", Date: "2025-03-03", Time: "10:00", Subject: "SAT", StudentName: "Ann", Duration: 60},
		{ID: "2", Date: "2025-03-05", Time: "10:00", Subject: "SAT", StudentName: "Ann, Bo", Duration: 60},
		{ID: "3", Date: "", Time: "10:00", Subject: "SAT", StudentName: "Ann"},
	}
	r, err := calculator.New(nil).Aggregate(lessons, 2025, 3, "")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	return r
}

func TestWriteSalary(t *testing.T) {
	actual := 25.0
	var buf bytes.Buffer
	err := WriteSalary(&buf, SalaryInput{TutorName: "Leyla", Report: sampleReport(t), Actual: &actual})
	if err != nil {
		t.Fatalf("WriteSalary failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != SummarySheet || sheets[1] != LessonsSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	tests := []struct {
		cell string
		want string
	}{
		{"B1", "Leyla"},
		{"B2", "2025-03"},
		{"B3", "2"},
		{"B4", "18"},
		{"B5", "25"},
		{"A6", "Skipped (no date)"},
		{"B6", "1"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(SummarySheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("Summary!%s = %q, want %q", tt.cell, got, tt.want)
		}
	}

	rows, err := f.GetRows(LessonsSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Lessons rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Date" || rows[1][0] != "2025-03-03" {
		t.Errorf("Lessons rows = %v", rows)
	}
}

func TestWriteSalaryWithoutActual(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSalary(&buf, SalaryInput{TutorName: "Leyla", Report: sampleReport(t)}); err != nil {
		t.Fatalf("WriteSalary failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue(SummarySheet, "B5")
	if got != "not recorded" {
		t.Errorf("Summary!B5 = %q, want not recorded", got)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(2025, 3); got != "salary-2025-03.xlsx" {
		t.Errorf("FileName = %q", got)
	}
}
