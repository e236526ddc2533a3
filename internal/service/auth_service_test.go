package service

import (
	"context"
	"net/http"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

func TestSignupLoginAndCurrentUser(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	client := env.authClient(nil)

	signup, err := client.Signup(ctx, connect.NewRequest(&api.SignupRequest{
		Email: "  New.Tutor@Example.com ", Name: "Nina New", Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if signup.Msg.User.Role != "EMPLOYEE" {
		t.Errorf("role: expected EMPLOYEE, got %s", signup.Msg.User.Role)
	}
	if signup.Msg.User.Email != "new.tutor@example.com" {
		t.Errorf("email: expected normalized address, got %s", signup.Msg.User.Email)
	}

	login, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "new.tutor@example.com", Password: "correct-horse"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.Token == "" {
		t.Fatal("expected token")
	}

	me := apiconnect.NewAuthServiceClient(http.DefaultClient, env.server.URL, connect.WithInterceptors(bearerInterceptor(login.Msg.Token)))
	current, err := me.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if current.Msg.User.ID != signup.Msg.User.ID || current.Msg.User.Name != "Nina New" {
		t.Errorf("user: expected %+v, got %+v", signup.Msg.User, current.Msg.User)
	}
}

func TestSignup_Errors(t *testing.T) {
	env := setupTestServer(t)
	client := env.authClient(nil)

	tests := []struct {
		name string
		req  *api.SignupRequest
		want connect.Code
	}{
		{"duplicate email", &api.SignupRequest{Email: "TUTOR@example.com", Name: "Again", Password: "long-enough"}, connect.CodeAlreadyExists},
		{"short password", &api.SignupRequest{Email: "x@example.com", Name: "X", Password: "short"}, connect.CodeInvalidArgument},
		{"missing name", &api.SignupRequest{Email: "y@example.com", Password: "long-enough"}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Signup(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.want)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestServer(t)
	client := env.authClient(nil)
	ctx := context.Background()

	if _, err := client.Signup(ctx, connect.NewRequest(&api.SignupRequest{Email: "z@example.com", Name: "Zed", Password: "right-password"})); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "z@example.com", Password: "wrong-password"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = client.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "nobody@example.com", Password: "whatever"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetCurrentUser_RequiresToken(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.authClient(nil).GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestListTutors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.tutors(env.manager).ListTutors(ctx, connect.NewRequest(&api.ListTutorsRequest{}))
	if err != nil {
		t.Fatalf("ListTutors failed: %v", err)
	}
	if len(resp.Msg.Tutors) != 2 {
		t.Fatalf("tutors: expected 2, got %+v", resp.Msg.Tutors)
	}
	if resp.Msg.Tutors[0].Name != "Oscar Other" || resp.Msg.Tutors[1].Name != "Tina Tutor" {
		t.Errorf("order: expected Oscar then Tina, got %s, %s", resp.Msg.Tutors[0].Name, resp.Msg.Tutors[1].Name)
	}

	_, err = env.tutors(env.tutor).ListTutors(ctx, connect.NewRequest(&api.ListTutorsRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)
}
