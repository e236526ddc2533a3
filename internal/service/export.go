package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/report"
)

// ExportPath serves the monthly salary workbook.
const ExportPath = "/export/salary.xlsx"

// ExportHandler serves GET ExportPath?tutorId=&year=&month= as an xlsx
// download. It expects identity in the request context.
type ExportHandler struct {
	salaries *SalaryService
	users    auth.UserStorage
}

// NewExportHandler creates the salary export handler.
func NewExportHandler(salaries *SalaryService, users auth.UserStorage) *ExportHandler {
	return &ExportHandler{salaries: salaries, users: users}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		http.Error(w, "year must be a number", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		http.Error(w, "month must be a number", http.StatusBadRequest)
		return
	}

	tutorID, err := resolveTutor(ctx, h.salaries.repo, q.Get("tutorId"))
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := h.salaries.Monthly(ctx, tutorID, year, month)
	if err != nil {
		slog.Warn("Salary export failed", "tutor_id", tutorID, "error", err)
		writeError(w, err)
		return
	}

	name := tutorID
	if u, err := h.users.GetUserByID(ctx, tutorID); err == nil && u.Name != "" {
		name = u.Name
	}

	var buf bytes.Buffer
	if err := report.WriteSalary(&buf, report.SalaryInput{TutorName: name, Report: m.Report, Actual: m.Actual}); err != nil {
		slog.Error("Failed to render salary workbook", "tutor_id", tutorID, "error", err)
		http.Error(w, "failed to render workbook", http.StatusInternalServerError)
		return
	}

	slog.Info("Salary exported", "tutor_id", tutorID, "year", year, "month", month, "bytes", buf.Len())

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(year, month)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// writeError answers with the HTTP status matching err's Connect code.
func writeError(w http.ResponseWriter, err error) {
	cerr := toConnectError(err)
	status := http.StatusInternalServerError
	switch cerr.Code() {
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	case connect.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case connect.CodePermissionDenied:
		status = http.StatusForbidden
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}
	http.Error(w, cerr.Message(), status)
}
