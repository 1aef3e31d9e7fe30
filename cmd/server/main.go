package main

import (
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"divvy/internal/auth"
	"divvy/internal/config"
	"divvy/internal/middleware"
	"divvy/internal/rpc"
	"divvy/internal/service"
	"divvy/internal/storage/sqlite"
	"divvy/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Open endpoints get logging and metrics; everything else also requires
	// a valid bearer token.
	open := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
	)
	authed := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	authPath, authHandler := rpc.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager), open)
	mux.Handle(authPath, authHandler)

	groupPath, groupHandler := rpc.NewGroupServiceHandler(service.NewGroupService(store), authed)
	mux.Handle(groupPath, groupHandler)

	expensePath, expenseHandler := rpc.NewExpenseServiceHandler(service.NewExpenseService(store), authed)
	mux.Handle(expensePath, expenseHandler)

	ledgerPath, ledgerHandler := rpc.NewLedgerServiceHandler(service.NewLedgerService(), authed)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", promhttp.Handler())

	handler := corsMiddleware(mux)

	// h2c allows HTTP/2 without TLS, which Connect clients expect when
	// talking to a local or reverse-proxied server.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.Address()
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
