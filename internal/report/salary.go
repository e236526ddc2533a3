// Package report renders monthly salary reports as Excel workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/tutorbook/internal/calculator"
)

const (
	SummarySheet = "Summary"
	LessonsSheet = "Lessons"

	// ContentType is the MIME type of an .xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SalaryInput is everything that goes into one tutor's salary workbook.
type SalaryInput struct {
	TutorName string
	Report    calculator.MonthlyReport
	// Actual is the manually recorded salary, if any. It is shown next to
	// the estimate, never summed into it.
	Actual *float64
}

// FileName returns the download name of the workbook for a period.
func FileName(year, month int) string {
	return fmt.Sprintf("salary-%04d-%02d.xlsx", year, month)
}

// WriteSalary writes the salary workbook to w.
func WriteSalary(w io.Writer, in SalaryInput) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it instead of leaving it empty.
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummary(f, in); err != nil {
		return err
	}

	if _, err := f.NewSheet(LessonsSheet); err != nil {
		return fmt.Errorf("failed to create lessons sheet: %w", err)
	}
	if err := writeLessons(f, in.Report); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, in SalaryInput) error {
	p := in.Report.Period
	rows := [][]any{
		{"Tutor", in.TutorName},
		{"Period", fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))},
		{"Lessons", in.Report.Count},
		{"Estimate", in.Report.Total},
	}
	if in.Actual != nil {
		rows = append(rows, []any{"Actual", *in.Actual})
	} else {
		rows = append(rows, []any{"Actual", "not recorded"})
	}
	if in.Report.Skipped > 0 {
		rows = append(rows, []any{"Skipped (no date)", in.Report.Skipped})
	}

	rows = append(rows, nil, []any{"Subject", "Students", "Lessons", "Unit price", "Subtotal"})
	for _, g := range in.Report.Breakdown {
		rows = append(rows, []any{g.Subject, g.StudentCount, g.Count, g.UnitPrice, g.Subtotal})
	}
	return setRows(f, SummarySheet, rows)
}

func writeLessons(f *excelize.File, r calculator.MonthlyReport) error {
	rows := [][]any{{"Date", "Time", "Subject", "Students", "Duration", "Price", "Notes"}}
	for _, g := range r.Breakdown {
		for _, l := range g.Lessons {
			rows = append(rows, []any{l.Date, l.Time, l.Subject, l.StudentName, l.Duration, g.UnitPrice, l.Notes})
		}
	}
	return setRows(f, LessonsSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
