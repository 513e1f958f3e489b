package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"legal-timeline/cmd/api/httpclient"
	"legal-timeline/cmd/api/router"
	"legal-timeline/cmd/api/services"
	internalbus "legal-timeline/cmd/internal/eventbus"
	"legal-timeline/cmd/internal/logger"
	"legal-timeline/config"
	"legal-timeline/db"
	"legal-timeline/eventbus"
	"legal-timeline/llm"
	"legal-timeline/repositories"
	"legal-timeline/timeline"
)

// @title           Legal Timeline API
// @version         1.0
// @description     Extracts chronological legal events from case documents and stores them per user
// @BasePath        /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Log.Errorf("failed to initialize store (driver=%s): %v", cfg.Store.Driver, err)
		os.Exit(1)
	}
	defer closeStore()

	llmHTTP := httpclient.New(httpclient.Config{Timeout: cfg.LLM.Timeout()})
	gen, err := llm.NewClient(ctx, cfg.LLM, llmHTTP)
	if err != nil {
		if !errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Log.Errorf("failed to create llm client: %v", err)
			os.Exit(1)
		}
		// 키가 없어도 기동한다. 추출 요청은 요청마다 설정 오류로 실패한다.
		logger.WarnWithFields("llm api key is not configured", logger.Fields{"provider": cfg.LLM.Provider})
		gen = nil
	}
	engine := timeline.New(gen, cfg.LLM.MaxInputChars)

	publisher := openPublisher(ctx, cfg.Events)
	defer publisher.Close()

	caseSvc := services.NewCaseService(repo, engine, publisher, cfg.Events.Topic)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.Handler(router.New(caseSvc), cfg.Server.MaxBodyBytes),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	// Graceful shutdown 설정
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.InfoWithFields("starting api server", logger.Fields{
			"addr":         cfg.Server.Addr,
			"store_driver": cfg.Store.Driver,
			"llm_provider": cfg.LLM.Provider,
			"llm_model":    cfg.LLM.ModelName,
			"events":       cfg.Events.Enabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server error: %v", err)
			sigChan <- syscall.SIGTERM
		}
	}()

	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down api server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("api server shutdown error: %v", err)
	}

	logger.Log.Info("api server stopped")
}

// openStore 는 설정된 드라이버로 케이스 저장소를 연다.
func openStore(ctx context.Context, cfg config.StoreConfig) (repositories.CaseRepository, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLiteCaseRepository(conn), func() { conn.Close() }, nil
	case "mongo", "mongodb":
		if err := db.Init(ctx, cfg); err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), config.GetConfig().Server.ShutdownTimeout())
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				logger.Log.Warnf("mongo disconnect error: %v", err)
			}
		}
		return repositories.NewMongoCaseRepository(db.Database(), cfg.TransactionalWrites), closeFn, nil
	default:
		return nil, nil, errors.New("unsupported store driver: " + cfg.Driver)
	}
}

// openPublisher 는 이벤트가 비활성화되었거나 Kafka 연결에 실패하면 NopPublisher 를 돌려준다.
func openPublisher(ctx context.Context, cfg config.EventsConfig) eventbus.Publisher {
	if !cfg.Enabled {
		return eventbus.NopPublisher{}
	}
	if cfg.Brokers == "" {
		logger.Log.Warn("events enabled but KAFKA_BOOTSTRAP_SERVERS is empty; case events are disabled")
		return eventbus.NopPublisher{}
	}

	if err := eventbus.EnsureTopics(ctx, cfg.Brokers, eventbus.NewTopic(cfg.Topic), 3); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := internalbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		return eventbus.NopPublisher{}
	}
	return bus
}
