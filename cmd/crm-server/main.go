package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmedinah/crm-backend/internal/crm/app"
	auditsqlite "github.com/rmedinah/crm-backend/internal/crm/audit/sqlite"
	"github.com/rmedinah/crm-backend/internal/crm/httpx"
	"github.com/rmedinah/crm-backend/internal/crm/storage/sqlite"
	"github.com/rmedinah/crm-backend/internal/pkg/telemetry"
	"github.com/rmedinah/crm-backend/internal/pkg/validation"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "crm-server"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	dbPath := getEnv("CRM_DB_PATH", "./data/crm.db")
	store, err := sqlite.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	auditRepo, err := auditsqlite.New(store.DB())
	if err != nil {
		slog.Error("failed to initialise audit log", "error", err)
		os.Exit(1)
	}

	val := validation.New()
	customers := app.NewCustomerService(store.Customers(), val, auditRepo)
	products := app.NewProductService(store.Products(), auditRepo)
	orders := app.NewOrderService(store.Orders(), auditRepo)

	handler := httpx.NewHandler(customers, products, orders)

	addr := getEnv("CRM_HTTP_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("crm server running", "addr", addr, "db", dbPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
	slog.Info("crm server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
