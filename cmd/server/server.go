package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-battle/internal/battlelog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	v1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	orchestrator "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-battle/internal/redis"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

var (
	grpcPort    int
	redisAddr   string
	reportTTL   time.Duration
	battleLog   bool
	concurrency int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the battle gRPC server. Reports go to Redis when --redis-addr is set, otherwise they live in memory.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", os.Getenv("REDIS_ADDR"),
		"Redis address; a comma separated list selects cluster mode")
	serverCmd.Flags().DurationVar(&reportTTL, "report-ttl", 24*time.Hour, "How long reports are kept")
	serverCmd.Flags().BoolVar(&battleLog, "battle-log", false, "Log every turn of every battle")
	serverCmd.Flags().IntVar(&concurrency, "concurrency", orchestrator.DefaultConcurrency, "Parallel battles per batch")
}

// newEventBus returns the bus battle events are published on. Subscribers
// run inline on the battle goroutine and must be safe for concurrent use.
func newEventBus() *events.Bus {
	bus := events.NewBus()
	bus.SubscribeFunc(battlelog.EventBattleOver, 0, func(ctx context.Context, e events.Event) error {
		outcome, _ := e.Context().Get(battlelog.KeyOutcome)
		rounds, _ := e.Context().Get(battlelog.KeyRounds)
		slog.DebugContext(ctx, "Battle over",
			"first", e.Source().GetID(),
			"second", e.Target().GetID(),
			"outcome", outcome,
			"rounds", rounds)
		return nil
	})
	bus.SubscribeFunc(battlelog.EventPathUnreachable, 0, func(ctx context.Context, e events.Event) error {
		slog.DebugContext(ctx, "Path unreachable",
			"attacker_id", e.Source().GetID(),
			"target_id", e.Target().GetID())
		return nil
	})
	return bus
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	reportRepo, closeRepo, err := newReportRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	var turnLog battle.LogSink
	if battleLog {
		turnLog = battlelog.NewLogrus(battlelog.NewLogrusLogger(logLevel, logFormat, os.Stderr))
	}
	sink := battlelog.NewMulti(turnLog, battlelog.NewEvents(ctx, newEventBus()))

	battleService, err := orchestrator.NewOrchestrator(&orchestrator.Config{
		ReportRepo:  reportRepo,
		IDGenerator: idgen.NewUUID("battle"),
		Sink:        sink,
		Concurrency: concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to create battle orchestrator: %w", err)
	}

	battleHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		BattleService: battleService,
	})
	if err != nil {
		return fmt.Errorf("failed to create battle handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterBattleServiceServer(srv, battleHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func newReportRepository(ctx context.Context) (battlereport.Repository, func(), error) {
	if redisAddr == "" {
		slog.Info("Storing reports in memory")
		return battlereport.NewInMemory(clock.New()), func() {}, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := redis.Connect(pingCtx, redisAddr, &redis.Options{DialTimeout: 5 * time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	repo, err := battlereport.NewRedisRepository(&battlereport.Config{
		Client: client,
		Clock:  clock.New(),
		TTL:    reportTTL,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create report repository: %w", err)
	}

	slog.Info("Storing reports in redis", "addr", redisAddr, "ttl", reportTTL)
	return repo, func() { _ = client.Close() }, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
