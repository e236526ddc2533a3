package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/validation"
	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// PricingService implements the Connect PricingService
type PricingService struct {
	apiconnect.UnimplementedPricingServiceHandler
	repo   *repository.Repository
	prices *PriceBook
}

// NewPricingService creates a new PricingService.
func NewPricingService(repo *repository.Repository, prices *PriceBook) *PricingService {
	return &PricingService{repo: repo, prices: prices}
}

// GetPricing returns the default table, the tutor's overrides and the flat rate.
func (s *PricingService) GetPricing(ctx context.Context, req *connect.Request[api.GetPricingRequest]) (*connect.Response[api.GetPricingResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	overrides, source, err := s.repo.LoadPricing(ctx, tutorID)
	if err != nil {
		slog.Error("GetPricing failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	defaults := s.prices.Defaults()
	return connect.NewResponse(&api.GetPricingResponse{
		Defaults:  toAPISubjects(defaults.Table()),
		Overrides: toAPIOverrides(overrides),
		FlatRate:  defaults.FlatRate(),
		Source:    string(source),
	}), nil
}

// SetTutorPricing replaces a tutor's overrides. An empty list removes them all.
func (s *PricingService) SetTutorPricing(ctx context.Context, req *connect.Request[api.SetTutorPricingRequest]) (*connect.Response[api.SetTutorPricingResponse], error) {
	if err := requireManager(ctx); err != nil {
		return nil, toConnectError(err)
	}
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	pricing, err := validation.Pricing(fromAPISubjects(req.Msg.Subjects))
	if err != nil {
		slog.Warn("SetTutorPricing rejected", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("SetTutorPricing request", "tutor_id", tutorID, "subjects", len(pricing))

	if err := s.repo.SavePricing(ctx, tutorID, pricing); err != nil {
		slog.Error("SetTutorPricing failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SetTutorPricingResponse{Overrides: toAPIOverrides(pricing)}), nil
}

// QuotePrice prices a prospective lesson for the tutor.
func (s *PricingService) QuotePrice(ctx context.Context, req *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	calc := s.prices.For(ctx, tutorID)
	return connect.NewResponse(&api.QuotePriceResponse{
		Price:        calc.Price(req.Msg.Subject, req.Msg.StudentName, tutorID),
		StudentCount: calculator.StudentCount(req.Msg.StudentName),
	}), nil
}
