package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/konigunited/restdelbot/internal/catalog"
	"github.com/konigunited/restdelbot/internal/env"
	"github.com/konigunited/restdelbot/internal/estimate"
	"github.com/konigunited/restdelbot/internal/llm"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/parser"
	"github.com/konigunited/restdelbot/internal/queue"
	"github.com/konigunited/restdelbot/internal/ratelimiter"
	"github.com/konigunited/restdelbot/internal/render"
	"github.com/konigunited/restdelbot/internal/repo"
	"github.com/konigunited/restdelbot/internal/selector"
	"github.com/konigunited/restdelbot/internal/service"
	"github.com/konigunited/restdelbot/internal/store/memory"
	"github.com/konigunited/restdelbot/internal/store/mongo"
	"github.com/konigunited/restdelbot/internal/store/redis"
	"github.com/konigunited/restdelbot/internal/worker"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const version = "1.0.0"

//	@title			Event Catering Assistant
//	@description	Order-intake assistant for catering events: chat, catalog and estimates
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath	/api/v1
func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:   env.GetString("ADDR", ":8080"),
		apiURL: env.GetString("EXTERNAL_URL", "localhost:8080"),
		env:    env.GetString("ENV", "development"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGO_URI", "mongodb://localhost:27017"),
			Database: env.GetString("MONGO_DATABASE", "eventbot"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		redis: redisConfig{
			Addr:     env.GetString("REDIS_ADDR", ""),
			Password: env.GetString("REDIS_PASSWORD", ""),
			DB:       env.GetInt("REDIS_DB", 0),
			TTL:      env.GetDuration("SESSION_TTL", 24*time.Hour),
		},
		catalog: catalogConfig{
			dir:           env.GetString("CATALOG_DIR", "menu_tables"),
			spreadsheetID: env.GetString("CATALOG_SPREADSHEET_ID", ""),
			readRange:     env.GetString("CATALOG_SHEET_RANGE", "A:F"),
		},
		googleCreds: env.GetString("GOOGLE_CREDENTIALS_PATH", ""),
		llm: llmConfig{
			enabled:   env.GetBool("LLM_ENABLED", false),
			apiKey:    env.GetString("LLM_API_KEY", ""),
			model:     env.GetString("LLM_MODEL", "claude-3-5-haiku-latest"),
			baseURL:   env.GetString("LLM_BASE_URL", ""),
			maxTokens: env.GetInt("LLM_MAX_TOKENS", 2000),
			timeout:   env.GetDuration("LLM_TIMEOUT", 20*time.Second),
		},
		outputDir: env.GetString("OUTPUT_DIR", "output"),
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	if err := cfg.validate(); err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// metrics
	m := metrics.New()

	// storage
	storage, err := mongo.New(ctx, mongo.Config{
		URI:      cfg.mongo.URI,
		Database: cfg.mongo.Database,
		Timeout:  cfg.mongo.Timeout,
	})
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}

	logger.Info("connected to MongoDB")

	if err := storage.CreateIndexes(ctx); err != nil {
		logger.Warnw("failed to create indexes", "error", err)
	} else {
		logger.Info("MongoDB indexes created successfully")
	}

	// repos
	recordRepo := mongo.NewEstimateRecordRepository(storage.Database())
	reloadTaskRepo := mongo.NewCatalogReloadTaskRepository(storage.Database())

	// broker
	var broker queue.Broker
	if cfg.rabbitMQ.URL != "" {
		broker, err = queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		})
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		logger.Info("connected to RabbitMQ")
	} else {
		broker = queue.NewMemoryBroker(logger)
		logger.Warn("RABBITMQ_URL not set, using in-process broker")
	}

	// sessions
	var (
		sessions repo.SessionRepository
		cache    sessionCache
	)
	if cfg.redis.Addr != "" {
		redisStore, err := redis.New(ctx, redis.Config{
			Addr:     cfg.redis.Addr,
			Password: cfg.redis.Password,
			DB:       cfg.redis.DB,
			TTL:      cfg.redis.TTL,
		})
		if err != nil {
			logger.Fatalw("failed to connect to Redis", "error", err)
		}
		sessions, cache = redisStore, redisStore
		logger.Info("connected to Redis")
	} else {
		sessions = memory.NewSessionStore()
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory")
	}

	// catalog
	store := catalog.NewStore(logger)
	var defaultSource catalog.Source = parser.NewTableFileSource(cfg.catalog.dir, logger)

	var sheets service.SheetSourceFunc
	if cfg.googleCreds != "" {
		credsJSON, err := os.ReadFile(cfg.googleCreds)
		if err != nil {
			logger.Fatalw("failed to read Google credentials", "error", err)
		}

		sheetSource, err := parser.NewGoogleSheetsSource(context.Background(), parser.Config{
			CredentialsJSON: credsJSON,
			SpreadsheetID:   cfg.catalog.spreadsheetID,
			ReadRange:       cfg.catalog.readRange,
		})
		if err != nil {
			logger.Fatalw("failed to create Google Sheets source", "error", err)
		}
		sheets = func(spreadsheetID string) catalog.Source {
			return sheetSource.WithSpreadsheet(spreadsheetID)
		}
		if cfg.catalog.spreadsheetID != "" {
			defaultSource = sheetSource
		}
		logger.Info("Google Sheets source initialized")
	} else {
		logger.Warn("Google credentials not provided, catalog reloads use table files only")
	}

	// llm
	var llmModel llms.Model
	if cfg.llm.enabled {
		model, err := llm.NewAnthropicModel(llm.Config{
			APIKey:    cfg.llm.apiKey,
			Model:     cfg.llm.model,
			BaseURL:   cfg.llm.baseURL,
			MaxTokens: cfg.llm.maxTokens,
			Timeout:   cfg.llm.timeout,
		})
		if err != nil {
			logger.Fatalw("failed to create LLM model", "error", err)
		}
		llmModel = model
		logger.Infow("LLM enrichment enabled", "model", cfg.llm.model)
	}

	// renderer
	var renderer service.Renderer
	if cfg.outputDir != "" {
		renderer = render.NewExcelRenderer(cfg.outputDir)
	}

	// services
	catalogService := service.NewCatalogService(
		reloadTaskRepo,
		store,
		defaultSource,
		sheets,
		broker,
		m,
		logger,
	)
	catalogService.LoadInitial(ctx)

	recordService := service.NewRecordService(
		recordRepo,
		broker,
		m,
		logger,
	)

	assistant := service.NewAssistantService(
		store,
		selector.New(store, logger),
		estimate.NewCalculator(logger),
		llmModel,
		cfg.llm.timeout,
		renderer,
		recordService,
		sessions,
		m,
		logger,
	)

	catalogWorker := worker.NewCatalogReloadWorker(catalogService, broker, logger)
	recordWorker := worker.NewEstimateRecordWorker(recordService, broker, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		rateLimiter:    rateLimiter,
		storage:        storage,
		sessionCache:   cache,
		broker:         broker,
		metrics:        m,
		assistant:      assistant,
		catalogService: catalogService,
		recordService:  recordService,
		catalogWorker:  catalogWorker,
		recordWorker:   recordWorker,
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
