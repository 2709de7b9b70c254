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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"admissions/internal/audit"
	"admissions/internal/course"
	"admissions/internal/eligibility"
	"admissions/internal/eligibility/handler"
	eligibilitymetrics "admissions/internal/eligibility/metrics"
	"admissions/internal/platform/config"
	"admissions/internal/platform/httpserver"
	"admissions/internal/platform/logger"
	"admissions/internal/platform/metrics"
	httptransport "admissions/internal/transport/http"
	"admissions/pkg/platform/circuit"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	table, err := course.Load(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("load course rules: %w", err)
	}
	validator, err := eligibility.NewValidator(table)
	if err != nil {
		return fmt.Errorf("build validator: %w", err)
	}

	auditLogger, err := buildAuditLogger(cfg.Audit, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := auditLogger.Close(); err != nil {
			log.Warn("closing audit logs", "error", err)
		}
	}()

	svc, err := eligibility.NewService(validator, eligibility.NewEngine(table), table, auditLogger,
		eligibility.WithLogger(log),
		eligibility.WithMetrics(eligibilitymetrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return fmt.Errorf("build eligibility service: %w", err)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.New(prometheus.DefaultRegisterer),
		Gatherer: prometheus.DefaultGatherer,
		Handlers: []httptransport.Registrar{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting eligibility service",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"courses", table.Len(),
			"input_log", cfg.Audit.InputPath,
			"output_log", cfg.Audit.OutputPath,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildAuditLogger opens the request and response files and, when brokers are
// configured, mirrors each stream to its Kafka topic.
func buildAuditLogger(cfg config.Audit, log *slog.Logger) (*audit.Logger, error) {
	requests, err := audit.OpenFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open request audit log: %w", err)
	}
	responses, err := audit.OpenFile(cfg.OutputPath)
	if err != nil {
		_ = requests.Close()
		return nil, fmt.Errorf("open response audit log: %w", err)
	}

	var requestSink, responseSink audit.Sink = requests, responses
	if cfg.KafkaEnabled() {
		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := audit.EnsureTopics(ensureCtx, cfg.KafkaBrokers, cfg.KafkaRequestTopic, cfg.KafkaResponseTopic)
		cancel()
		if err != nil {
			log.Warn("could not ensure audit topics; mirroring anyway", "error", err)
		}
		reqKafka, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaRequestTopic, kgo.ClientID("eligibility-audit"))
		if err != nil {
			_ = requests.Close()
			_ = responses.Close()
			return nil, fmt.Errorf("connect request audit topic: %w", err)
		}
		respKafka, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaResponseTopic, kgo.ClientID("eligibility-audit"))
		if err != nil {
			_ = reqKafka.Close()
			_ = requests.Close()
			_ = responses.Close()
			return nil, fmt.Errorf("connect response audit topic: %w", err)
		}
		requestSink = audit.Tee(requests, audit.NewBreakerSink(reqKafka, circuit.New("kafka-requests"), log))
		responseSink = audit.Tee(responses, audit.NewBreakerSink(respKafka, circuit.New("kafka-responses"), log))
		log.Info("mirroring audit logs to kafka",
			"brokers", cfg.KafkaBrokers,
			"request_topic", cfg.KafkaRequestTopic,
			"response_topic", cfg.KafkaResponseTopic,
		)
	}
	return audit.NewLogger(requestSink, responseSink)
}
