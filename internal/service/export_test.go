package service

import (
	"net/http"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/report"
)

func (e *testEnv) export(t *testing.T, u *models.User, query string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+ExportPath+"?"+query, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(u))
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestExportSalary(t *testing.T) {
	env := setupTestServer(t)
	seedMarch(env)

	resp := env.export(t, env.tutor, "year=2025&month=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != report.ContentType {
		t.Errorf("content type: got %s", ct)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue(report.SummarySheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if name != "Tina Tutor" {
		t.Errorf("tutor: expected Tina Tutor, got %q", name)
	}
	total, err := f.GetCellValue(report.SummarySheet, "B4")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if total != "32" {
		t.Errorf("estimate: expected 32, got %q", total)
	}
}

func TestExportSalary_Errors(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name  string
		as    *models.User
		query string
		want  int
	}{
		{"no token", nil, "year=2025&month=3", http.StatusUnauthorized},
		{"bad year", env.tutor, "year=soon&month=3", http.StatusBadRequest},
		{"bad month", env.tutor, "year=2025&month=13", http.StatusBadRequest},
		{"other tutor", env.tutor, "year=2025&month=3&tutorId=" + env.other.ID, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.export(t, tt.as, tt.query)
			if resp.StatusCode != tt.want {
				t.Errorf("status: expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}
