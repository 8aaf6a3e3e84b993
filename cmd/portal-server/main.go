// cmd/portal-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ovse-portal/internal/admin"
	awsclients "ovse-portal/internal/common/aws"
	"ovse-portal/internal/common/config"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/common/observability"
	schemaval "ovse-portal/internal/common/validation"
	"ovse-portal/internal/notify"
	"ovse-portal/internal/server"
	"ovse-portal/internal/store"
	"ovse-portal/internal/workflow"
	"ovse-portal/pkg/registry"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting OVSE approval portal...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("portal-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Operation registry + schema validation ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("operation registry load failed", zap.Error(err))
	}
	schemas := schemaval.NewSchemaValidator(reg)
	zapLog.Info("operation registry loaded",
		zap.String("version", reg.Version),
		zap.Int("operations", len(reg.Operations)),
	)

	// --- Outbound notifier ---
	notifier, err := buildNotifier(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}
	zapLog.Info("notifier initialized", zap.String("mode", cfg.Notifications.Mode))

	// --- Stores ---
	apps := store.NewApplicationStore(store.SeedApplications(), log)
	drafts := store.NewDraftLedger(apps, store.SeedDrafts(), log)
	directory := admin.NewDirectory(admin.SeedUsers(), admin.SeedPendingChanges(), admin.SeedAuditLog(), log).
		WithSessions(admin.SeedSessions())

	// --- Workflow engine ---
	engine := workflow.NewEngine(workflow.NewMockIssuer(), notifier, log)

	// --- HTTP server ---
	srv := server.New(apps, drafts, engine, directory, schemas, log).WithObservability(obs)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Portal stopped")
}

// buildNotifier selects the outbound channel for issuance and revocation
// events from config.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) (notify.Notifier, error) {
	switch cfg.Notifications.Mode {
	case "simulated":
		return notify.NewSimulated(log), nil
	case "webhook":
		return notify.NewWebhook(cfg.Notifications.Webhook.URL, config.GetDuration(cfg.Notifications.Webhook.Timeout), log), nil
	case "sns":
		client, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return nil, err
		}
		return notify.NewSNSNotifier(client, cfg.Notifications.AWS.TopicARN, log), nil
	case "ses":
		client, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return nil, err
		}
		return notify.NewSESNotifier(client, cfg.Notifications.AWS.SES.FromEmail, cfg.Notifications.AWS.SES.ToEmail, log), nil
	default:
		return nil, fmt.Errorf("unknown notifications mode %q", cfg.Notifications.Mode)
	}
}
