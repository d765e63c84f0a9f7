package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"news-rating-be/internal/bootstrap"
	"news-rating-be/internal/config"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/server"
	"news-rating-be/internal/service"
	"news-rating-be/internal/tracer"
	"news-rating-be/pkg/model"
	"news-rating-be/pkg/sheets"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer("news-rating-be")
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	defer sysLogger.Sync()
	auditLogger := logger.NewIsolatedLogger("logs/audit.log")
	defer auditLogger.Sync()

	// 2. Allow-list and cookie settings
	creds, err := config.LoadCredentials(cfg.Auth.CredentialsFile)
	if err != nil {
		log.Fatalf("Unable to load credentials: %v", err)
	}
	cfg.Auth = cfg.Auth.MergeCookie(creds.Cookie)
	if err := cfg.Auth.CheckCookieKey(cfg.App.IsProduction()); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}
	if cfg.Auth.CookieKey == config.DefaultCookieKey {
		sysLogger.Warn("AUTH", "Using the development cookie key; set COOKIE_KEY before exposing this server", nil)
	}

	// 3. Model artifacts: a missing or corrupt file stops startup
	artifacts, err := model.LoadArtifacts(cfg.Model.PreprocessorPath, cfg.Model.ClassifierPath)
	if err != nil {
		log.Fatalf("Unable to load model artifacts: %v", err)
	}
	if err := service.VerifyStorySchema(artifacts.Preprocessor, sysLogger); err != nil {
		log.Fatalf("Model artifacts do not fit the story form: %v", err)
	}

	location, err := time.LoadLocation(cfg.Audit.Timezone)
	if err != nil {
		log.Fatalf("Unable to load audit timezone %q: %v", cfg.Audit.Timezone, err)
	}

	// 4. Audit sheet; logins keep working without it
	appender := newAppender(cfg, sysLogger)

	// 5. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, bootstrap.Dependencies{
		Users:       creds.Credentials.Usernames,
		Predictor:   artifacts,
		Appender:    appender,
		Location:    location,
		SysLogger:   sysLogger,
		AuditLogger: auditLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start Background Services
	log.Println("Background: Starting Audit Consumer...")
	if err := container.AuditConsumer.Consume(ctx); err != nil {
		log.Fatalf("Audit consumer: %v", err)
	}

	// 7. Initialize and run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		_ = container.PubSub.Close()
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

func newAppender(cfg *config.Config, sysLogger logger.ILogger) service.RowAppender {
	saJSON, err := config.LoadServiceAccount(cfg.Audit.SecretsFile)
	if err != nil {
		sysLogger.Warn("AUDIT", "Login audit disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return service.DisabledAppender{Reason: err.Error()}
	}

	appender, err := sheets.NewAppender(context.Background(), saJSON, cfg.Audit.SpreadsheetName, cfg.Audit.WorksheetName)
	if err != nil {
		sysLogger.Warn("AUDIT", "Login audit disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return service.DisabledAppender{Reason: err.Error()}
	}
	return appender
}
