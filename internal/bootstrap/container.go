package bootstrap

import (
	"context"
	"log"
	"time"

	"concept-search-be/internal/config"
	"concept-search-be/internal/constant"
	"concept-search-be/internal/controller"
	"concept-search-be/internal/pkg/logger"
	"concept-search-be/internal/repository/contract"
	"concept-search-be/internal/repository/implementation"
	"concept-search-be/internal/repository/memory"
	redisrepo "concept-search-be/internal/repository/redis"
	"concept-search-be/internal/service"
	"concept-search-be/pkg/conceptapi"
	pktNats "concept-search-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Session layer (exposed for server middleware wiring)
	SessionRepository contract.SessionRepository
	SessionTTL        time.Duration

	Logger logger.ILogger
}

// NewContainer wires the dependency graph. db may be nil: the service
// then runs without search history while the session-backed token core
// stays fully functional.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	// Session storage: redis shares sessions across instances, memory is
	// the single-node default.
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb, sessionTTL, sysLogger)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (auxiliary, warn-only)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Search history is database-backed; without a DSN it is disabled.
	var searchLogRepo contract.SearchLogRepository
	var consumerService service.IConsumerService
	if db != nil {
		searchLogRepo = implementation.NewSearchLogRepository(db)
		consumerService = service.NewConsumerService(pubSub, constant.SearchPerformedTopic, searchLogRepo, sysLogger)
	} else {
		log.Printf("[WARN] No database configured, search history disabled")
	}

	// Services
	apiClient := conceptapi.NewClient(cfg.ConceptAPI.BaseURL, cfg.ConceptAPI.APIKey)
	tokenService := service.NewTokenService(sysLogger)
	publisherService := service.NewPublisherService(pubSub, constant.SearchPerformedTopic)
	searchService := service.NewSearchService(
		tokenService,
		apiClient,
		publisherService,
		natsPub,
		searchLogRepo,
		sysLogger,
		cfg.ConceptAPI.SuggestLimit,
		time.Duration(cfg.ConceptAPI.SuggestCacheTTL)*time.Minute,
	)

	return &Container{
		SearchController:  controller.NewSearchController(searchService),
		ConsumerService:   consumerService,
		SessionRepository: sessionRepo,
		SessionTTL:        sessionTTL,
		Logger:            sysLogger,
	}
}
