package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/usecase"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/port"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/service"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/infrastructure/config"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/infrastructure/messaging"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/infrastructure/ruleset"
	grpcpresentation "github.com/akulaahhhh/Loan-Risk-Evaluator/internal/presentation/grpc"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/presentation/rest"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/kafka"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/observability"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/tlsutil"
)

const serviceName = "risk-service"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("risk-service failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	logger.Info("starting risk-service", slog.String("version", version))

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	otel.SetMeterProvider(meterProvider)
	assessmentMetrics, err := observability.NewAssessmentMetrics(meterProvider.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("init assessment metrics: %w", err)
	}

	// Load the rule set and bind it to the applicant profile.
	rs, err := loadRuleset(cfg.RulesetPath)
	if err != nil {
		return err
	}
	riskEngine, err := service.NewRiskEngine(rs.Engine)
	if err != nil {
		return fmt.Errorf("bind rule set: %w", err)
	}
	logger.Info("rule set loaded",
		slog.String("name", rs.Name),
		slog.String("path", cfg.RulesetPath),
		slog.Int("rule_count", len(riskEngine.Rules())),
		slog.Int("input_count", len(riskEngine.Registry().Inputs())),
	)

	checks := map[string]rest.ReadinessCheck{
		"ruleset": riskEngine.Ready,
	}

	// Initialize the event publisher.
	var (
		eventPublisher port.EventPublisher
		producer       *kafka.Producer
	)
	if kcfg := cfg.Kafka(); kcfg.Enabled() {
		producer, err = kafka.NewProducer(kcfg)
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		eventPublisher = messaging.NewKafkaPublisher(producer, cfg.EventsTopic, logger)
		checks["kafka"] = producer.Ping
		logger.Info("publishing events to kafka",
			slog.Any("brokers", kcfg.Brokers),
			slog.String("topic", cfg.EventsTopic),
		)
	} else {
		eventPublisher = messaging.NewLogPublisher(logger)
		logger.Warn("KAFKA_BROKERS not set, domain events will only be logged")
	}

	// Initialize use cases.
	assessApplicantUC := usecase.NewAssessApplicant(riskEngine, eventPublisher, assessmentMetrics, logger)
	listRulesUC := usecase.NewListRules(riskEngine)
	describeVariablesUC := usecase.NewDescribeVariables(riskEngine)

	// Initialize gRPC handler and server.
	serverOpts := grpcpresentation.ServerOptions{Reflection: cfg.GRPCReflection}
	if cfg.GRPCTLSEnabled() {
		serverOpts.Credentials, err = tlsutil.ServerCredentials(cfg.GRPCTLSCertFile, cfg.GRPCTLSKeyFile)
		if err != nil {
			return fmt.Errorf("load gRPC TLS credentials: %w", err)
		}
	}
	grpcHandler := grpcpresentation.NewRiskServiceHandler(assessApplicantUC, listRulesUC, describeVariablesUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, serverOpts)

	// Initialize HTTP health and metrics server.
	healthHandler := rest.NewHealthHandler(serviceName, logger, checks)
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.NewRouter(healthHandler, metricsHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("risk-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("server error", slog.String("error", runErr.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("meter provider shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("risk-service stopped")
	return runErr
}

func loadRuleset(path string) (*ruleset.Ruleset, error) {
	if path == "" {
		return ruleset.Default()
	}
	return ruleset.Load(path)
}
