package bootstrap

import (
	"context"
	"log"
	"time"

	"flix-n-chill-be/internal/config"
	"flix-n-chill-be/internal/controller"
	"flix-n-chill-be/internal/handler"
	"flix-n-chill-be/internal/pkg/logger"
	"flix-n-chill-be/internal/repository/implementation"
	"flix-n-chill-be/internal/service"
	"flix-n-chill-be/internal/websocket"
	pktNats "flix-n-chill-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController           controller.IChatController
	RecommendationController controller.IRecommendationController

	// WebSocket gateway
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub

	// Background services (run by main.go)
	ChatFanoutService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus: persisted chat messages flow through a
	// single FIFO topic to the fan-out consumer.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS integration events (optional; chat works without the bus).
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis bridges room broadcasts across instances. A failed ping
	// degrades the hub to single-instance fan-out.
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v", err)
	} else {
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (single-instance fan-out)", err)
			rdb = nil
		}
	}

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	roomRepo := implementation.NewChatRoomRepository(db)
	messageRepo := implementation.NewMessageRepository(db)
	catalogRepo := implementation.NewCatalogRepository(db)

	// WebSocket hub with its own domain log.
	wsLogger := logger.NewIsolatedLogger(cfg.Chat.LogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Services
	chatService := service.NewChatService(roomRepo, messageRepo, userRepo, pubSub, natsPub, wsLogger, cfg.Chat.HistoryLimit)
	fanoutService := service.NewChatFanoutService(pubSub, wsHub, wsLogger)
	recommendationService := service.NewRecommendationService(
		catalogRepo,
		time.Duration(cfg.Reco.PreferenceCacheTTL)*time.Minute,
		sysLogger,
	)

	return &Container{
		ChatController:           controller.NewChatController(chatService),
		RecommendationController: controller.NewRecommendationController(recommendationService, cfg.Reco.DefaultCount),
		ChatWsHandler:            handler.NewChatWsHandler(chatService, wsHub, wsLogger),
		WebSocketHub:             wsHub,
		ChatFanoutService:        fanoutService,
	}
}
