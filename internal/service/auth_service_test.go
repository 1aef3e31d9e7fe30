package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"divvy/internal/auth"
	"divvy/internal/middleware"
	"divvy/internal/rpc"
	"divvy/internal/storage/sqlite"
)

// setupAuthServer wires the auth service plus a token-protected group
// service, so the full register/login/call flow can be exercised.
func setupAuthServer(t *testing.T) (*rpc.AuthServiceClient, *rpc.GroupServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	mux := http.NewServeMux()
	authPath, authHandler := rpc.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager))
	mux.Handle(authPath, authHandler)
	groupPath, groupHandler := rpc.NewGroupServiceHandler(
		NewGroupService(store),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)),
	)
	mux.Handle(groupPath, groupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return rpc.NewAuthServiceClient(http.DefaultClient, server.URL),
		rpc.NewGroupServiceClient(http.DefaultClient, server.URL)
}

func TestRegisterAndLogin(t *testing.T) {
	authClient, groupClient := setupAuthServer(t)
	ctx := context.Background()

	registered, err := authClient.Register(ctx, connect.NewRequest(&rpc.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if registered.Msg.Token == "" {
		t.Fatal("Register returned empty token")
	}
	if registered.Msg.User.Email != "alice@example.com" {
		t.Errorf("Register user = %+v", registered.Msg.User)
	}

	login, err := authClient.Login(ctx, connect.NewRequest(&rpc.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.ID != registered.Msg.User.ID {
		t.Errorf("Login user ID = %s, want %s", login.Msg.User.ID, registered.Msg.User.ID)
	}

	// The issued token must open the protected surface.
	req := connect.NewRequest(&rpc.CreateGroupRequest{Name: "Trip", MemberNames: []string{"Alice"}})
	req.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	if _, err := groupClient.CreateGroup(ctx, req); err != nil {
		t.Errorf("CreateGroup with valid token failed: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	authClient, _ := setupAuthServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *rpc.RegisterRequest
		wantCode connect.Code
	}{
		{
			name:     "missing email",
			req:      &rpc.RegisterRequest{DisplayName: "Alice", Password: "correct-horse"},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "weak password",
			req:      &rpc.RegisterRequest{Email: "a@example.com", DisplayName: "A", Password: "short"},
			wantCode: connect.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authClient.Register(ctx, connect.NewRequest(tt.req))
			if connect.CodeOf(err) != tt.wantCode {
				t.Errorf("Register error = %v, want code %v", err, tt.wantCode)
			}
		})
	}

	valid := &rpc.RegisterRequest{Email: "a@example.com", DisplayName: "A", Password: "correct-horse"}
	if _, err := authClient.Register(ctx, connect.NewRequest(valid)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := authClient.Register(ctx, connect.NewRequest(valid))
	if connect.CodeOf(err) != connect.CodeAlreadyExists {
		t.Errorf("duplicate Register error = %v, want AlreadyExists", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	authClient, _ := setupAuthServer(t)
	ctx := context.Background()

	_, err := authClient.Register(ctx, connect.NewRequest(&rpc.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = authClient.Login(ctx, connect.NewRequest(&rpc.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("Login with wrong password: error = %v, want Unauthenticated", err)
	}

	_, err = authClient.Login(ctx, connect.NewRequest(&rpc.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("Login with unknown email: error = %v, want Unauthenticated", err)
	}
}

func TestProtectedEndpoint_RequiresToken(t *testing.T) {
	_, groupClient := setupAuthServer(t)
	ctx := context.Background()

	_, err := groupClient.ListGroups(ctx, connect.NewRequest(&rpc.ListGroupsRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("ListGroups without token: error = %v, want Unauthenticated", err)
	}

	req := connect.NewRequest(&rpc.ListGroupsRequest{})
	req.Header().Set("Authorization", "Bearer not-a-token")
	_, err = groupClient.ListGroups(ctx, req)
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("ListGroups with garbage token: error = %v, want Unauthenticated", err)
	}
}
