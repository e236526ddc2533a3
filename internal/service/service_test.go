package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/middleware"
	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/storage/memstore"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// testEnv is a running server with one tutor, a second tutor and a manager.
type testEnv struct {
	t       *testing.T
	server  *httptest.Server
	store   *memstore.Store
	jwt     *auth.JWTManager
	tutor   *models.User
	other   *models.User
	manager *models.User
}

// setupTestServer starts every service behind the real auth interceptor.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.New()
	jwtManager := auth.NewJWTManager("test-secret", 0)
	env := &testEnv{t: t, store: store, jwt: jwtManager}

	env.tutor = env.createUser("tutor@example.com", "Tina Tutor", models.RoleEmployee)
	env.other = env.createUser("other@example.com", "Oscar Other", models.RoleEmployee)
	env.manager = env.createUser("boss@example.com", "Mia Manager", models.RoleManager)

	repo := repository.New(store)
	prices := NewPriceBook(calculator.New(nil), repo)
	expander := calculator.NewExpander()

	opts := connect.WithInterceptors(middleware.RequireAuth(jwtManager, PublicProcedures...))
	salaries := NewSalaryService(repo, prices)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default()), opts))
	mux.Handle(apiconnect.NewTutorServiceHandler(NewTutorService(repo), opts))
	mux.Handle(apiconnect.NewLessonServiceHandler(NewLessonService(repo, prices), opts))
	mux.Handle(apiconnect.NewTemplateServiceHandler(NewTemplateService(repo, expander), opts))
	mux.Handle(apiconnect.NewPricingServiceHandler(NewPricingService(repo, prices), opts))
	mux.Handle(apiconnect.NewSalaryServiceHandler(salaries, opts))
	mux.Handle(ExportPath, middleware.RequireAuthHTTP(jwtManager, NewExportHandler(salaries, store)))

	env.server = httptest.NewServer(mux)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) createUser(email, name string, role models.Role) *models.User {
	e.t.Helper()
	u := models.NewUser(email, name, "")
	u.Role = role
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		e.t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func (e *testEnv) token(u *models.User) string {
	e.t.Helper()
	token, err := e.jwt.Generate(u)
	if err != nil {
		e.t.Fatalf("Generate failed: %v", err)
	}
	return token
}

// as returns client options that authenticate every call as u.
func (e *testEnv) as(u *models.User) connect.ClientOption {
	if u == nil {
		return connect.WithInterceptors()
	}
	return connect.WithInterceptors(bearerInterceptor(e.token(u)))
}

func bearerInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

func (e *testEnv) lessons(u *models.User) apiconnect.LessonServiceClient {
	return apiconnect.NewLessonServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

func (e *testEnv) templates(u *models.User) apiconnect.TemplateServiceClient {
	return apiconnect.NewTemplateServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

func (e *testEnv) pricing(u *models.User) apiconnect.PricingServiceClient {
	return apiconnect.NewPricingServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

func (e *testEnv) salary(u *models.User) apiconnect.SalaryServiceClient {
	return apiconnect.NewSalaryServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

func (e *testEnv) tutors(u *models.User) apiconnect.TutorServiceClient {
	return apiconnect.NewTutorServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

func (e *testEnv) authClient(u *models.User) apiconnect.AuthServiceClient {
	return apiconnect.NewAuthServiceClient(http.DefaultClient, e.server.URL, e.as(u))
}

// seedLessons writes lessons straight to the store, bypassing validation.
func (e *testEnv) seedLessons(u *models.User, lessons ...models.Lesson) {
	e.t.Helper()
	if err := e.store.ReplaceLessons(context.Background(), u.ID, lessons); err != nil {
		e.t.Fatalf("ReplaceLessons failed: %v", err)
	}
}

func raw(t *testing.T, records ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		out[i] = data
	}
	return out
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("code: expected %v, got %v (%v)", want, connectErr.Code(), err)
	}
}
