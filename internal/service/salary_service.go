package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// SalaryService implements the Connect SalaryService
type SalaryService struct {
	apiconnect.UnimplementedSalaryServiceHandler
	repo   *repository.Repository
	prices *PriceBook
}

// NewSalaryService creates a new SalaryService.
func NewSalaryService(repo *repository.Repository, prices *PriceBook) *SalaryService {
	return &SalaryService{repo: repo, prices: prices}
}

// MonthlySalary is a computed estimate next to the recorded salary, if any.
type MonthlySalary struct {
	Report calculator.MonthlyReport
	Actual *float64
	Source repository.Source
}

// Monthly computes the salary estimate of (year, month) for a tutor.
func (s *SalaryService) Monthly(ctx context.Context, tutorID string, year, month int) (MonthlySalary, error) {
	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return MonthlySalary{}, err
	}

	report, err := s.prices.For(ctx, tutorID).Aggregate(snap.Lessons, year, month, tutorID)
	if err != nil {
		return MonthlySalary{}, err
	}

	out := MonthlySalary{Report: report, Source: snap.Source}
	if rec, ok := models.FindSalary(snap.Salaries, year, month); ok {
		actual := rec.Salary
		out.Actual = &actual
	}
	return out, nil
}

// GetMonthlyReport returns the estimate of a month with its breakdown.
func (s *SalaryService) GetMonthlyReport(ctx context.Context, req *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("GetMonthlyReport request", "tutor_id", tutorID, "year", req.Msg.Year, "month", req.Msg.Month)

	m, err := s.Monthly(ctx, tutorID, req.Msg.Year, req.Msg.Month)
	if err != nil {
		slog.Warn("GetMonthlyReport failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Monthly report computed", "tutor_id", tutorID, "total", m.Report.Total, "count", m.Report.Count, "skipped", m.Report.Skipped)
	return connect.NewResponse(&api.GetMonthlyReportResponse{
		Estimate: toAPIReport(m.Report),
		Actual:   m.Actual,
		Source:   string(m.Source),
	}), nil
}

// GetSalary returns the recorded salary of a month. Salary is nil when none is recorded.
func (s *SalaryService) GetSalary(ctx context.Context, req *connect.Request[api.GetSalaryRequest]) (*connect.Response[api.GetSalaryResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := calculator.NewPeriod(req.Msg.Year, req.Msg.Month); err != nil {
		return nil, toConnectError(err)
	}

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.GetSalaryResponse{}
	if rec, ok := models.FindSalary(snap.Salaries, req.Msg.Year, req.Msg.Month); ok {
		salary := toAPISalary(tutorID, rec)
		resp.Salary = &salary
	}
	return connect.NewResponse(resp), nil
}

// SetSalary records the salary actually paid for a month.
func (s *SalaryService) SetSalary(ctx context.Context, req *connect.Request[api.SetSalaryRequest]) (*connect.Response[api.SetSalaryResponse], error) {
	if err := requireManager(ctx); err != nil {
		return nil, toConnectError(err)
	}
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := calculator.NewPeriod(req.Msg.Year, req.Msg.Month); err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.Salary < 0 {
		return nil, toConnectError(fmt.Errorf("%w: %v", ErrInvalidSalary, req.Msg.Salary))
	}

	record := models.SalaryRecord{Year: req.Msg.Year, Month: req.Msg.Month, Salary: req.Msg.Salary}
	slog.Info("SetSalary request", "tutor_id", tutorID, "year", record.Year, "month", record.Month, "salary", record.Salary)

	if err := s.repo.SaveSalary(ctx, tutorID, record); err != nil {
		slog.Error("SetSalary failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SetSalaryResponse{Salary: toAPISalary(tutorID, record)}), nil
}
