package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

func TestGetPricing_Defaults(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.pricing(env.tutor).GetPricing(context.Background(), connect.NewRequest(&api.GetPricingRequest{}))
	if err != nil {
		t.Fatalf("GetPricing failed: %v", err)
	}

	if len(resp.Msg.Defaults) != 5 {
		t.Errorf("defaults: expected 5 subjects, got %d", len(resp.Msg.Defaults))
	}
	if len(resp.Msg.Overrides) != 0 {
		t.Errorf("overrides: expected none, got %+v", resp.Msg.Overrides)
	}
	if resp.Msg.FlatRate != 5 {
		t.Errorf("flatRate: expected 5, got %v", resp.Msg.FlatRate)
	}
}

func TestSetTutorPricing(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.pricing(env.manager).SetTutorPricing(ctx, connect.NewRequest(&api.SetTutorPricingRequest{
		TutorID: env.tutor.ID,
		Subjects: []api.SubjectPricing{{
			Subject: "SAT",
			Tiers:   []api.PricingTier{{MinStudents: 1, Price: 20}, {MinStudents: 2, Price: 30}},
		}},
	}))
	if err != nil {
		t.Fatalf("SetTutorPricing failed: %v", err)
	}

	quote := func(t *testing.T, c api.QuotePriceRequest, asOther bool) float64 {
		t.Helper()
		client := env.pricing(env.tutor)
		if asOther {
			client = env.pricing(env.other)
		}
		resp, err := client.QuotePrice(ctx, connect.NewRequest(&c))
		if err != nil {
			t.Fatalf("QuotePrice failed: %v", err)
		}
		return resp.Msg.Price
	}

	cases := []struct {
		name    string
		req     api.QuotePriceRequest
		asOther bool
		want    float64
	}{
		{"override single", api.QuotePriceRequest{Subject: "SAT", StudentName: "Ann"}, false, 20},
		{"override pair, case-insensitive", api.QuotePriceRequest{Subject: " sat ", StudentName: "Ann, Bo"}, false, 30},
		{"no students floors to first tier", api.QuotePriceRequest{Subject: "SAT", StudentName: ""}, false, 20},
		{"default for subject without override", api.QuotePriceRequest{Subject: "IELTS", StudentName: "Ann"}, false, 8},
		{"flat rate for unknown subject", api.QuotePriceRequest{Subject: "Chess", StudentName: "Ann, Bo, "}, false, 10},
		{"other tutor keeps defaults", api.QuotePriceRequest{Subject: "SAT", StudentName: "Ann"}, true, 8},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(t, tt.req, tt.asOther); got != tt.want {
				t.Errorf("price: expected %v, got %v", tt.want, got)
			}
		})
	}

	resp, err := env.pricing(env.tutor).GetPricing(ctx, connect.NewRequest(&api.GetPricingRequest{}))
	if err != nil {
		t.Fatalf("GetPricing failed: %v", err)
	}
	if len(resp.Msg.Overrides) != 1 || resp.Msg.Overrides[0].Subject != "SAT" {
		t.Errorf("overrides: expected SAT, got %+v", resp.Msg.Overrides)
	}
}

func TestSetTutorPricing_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	valid := []api.SubjectPricing{{Subject: "SAT", Tiers: []api.PricingTier{{MinStudents: 1, Price: 20}}}}

	t.Run("employee", func(t *testing.T) {
		_, err := env.pricing(env.tutor).SetTutorPricing(ctx, connect.NewRequest(&api.SetTutorPricingRequest{Subjects: valid}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("descending tiers", func(t *testing.T) {
		_, err := env.pricing(env.manager).SetTutorPricing(ctx, connect.NewRequest(&api.SetTutorPricingRequest{
			TutorID: env.tutor.ID,
			Subjects: []api.SubjectPricing{{
				Subject: "SAT",
				Tiers:   []api.PricingTier{{MinStudents: 3, Price: 20}, {MinStudents: 1, Price: 10}},
			}},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("no tiers", func(t *testing.T) {
		_, err := env.pricing(env.manager).SetTutorPricing(ctx, connect.NewRequest(&api.SetTutorPricingRequest{
			TutorID:  env.tutor.ID,
			Subjects: []api.SubjectPricing{{Subject: "SAT"}},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}
