package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-noteflow-be/internal/config"
	"ai-noteflow-be/internal/controller"
	"ai-noteflow-be/internal/pkg/logger"
	"ai-noteflow-be/internal/repository/unitofwork"
	"ai-noteflow-be/internal/service"
	"ai-noteflow-be/internal/websocket"
	"ai-noteflow-be/pkg/completion"
	"ai-noteflow-be/pkg/featureflag"
	pkgNats "ai-noteflow-be/pkg/nats"
	"ai-noteflow-be/pkg/transcript"
	"ai-noteflow-be/pkg/transcription"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// embedTopic is the in-process watermill topic for note embedding jobs.
const embedTopic = "note.embed"

// flagTTL is how long a feature-flag lookup stays memoized.
const flagTTL = 30 * time.Second

type Container struct {
	// Controllers
	NotebookController   controller.INotebookController
	NoteController       controller.INoteController
	EnhanceController    controller.IEnhanceController
	AttachmentController controller.IAttachmentController
	TranscriptController controller.ITranscriptController
	TranscribeController controller.ITranscribeController
	ChatController       controller.IChatController
	AiConfigController   controller.IAiConfigController
	RealtimeController   controller.IRealtimeController

	// Background services, run by main
	ConsumerService service.IConsumerService
	NotifierService service.INotifierService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus for embedding jobs
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// AI provider clients
	aiClient := completion.NewClient(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.CompletionModel)
	transcriptionClient := transcription.NewClient(cfg.Ai.BaseURL, cfg.Ai.APIKey, cfg.Ai.TranscriptionModel)
	extractor := transcript.NewExtractor(cfg.Transcript.Languages)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Feature flags backed by the AI config table
	flagSource := service.NewAiConfigSource(uowFactory)
	flags := featureflag.NewCache(flagSource, flagTTL, service.FlagFallbacks())

	// Services
	publisherService := service.NewPublisherService(embedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		embedTopic,
		uowFactory,
		aiClient,
		cfg.Ai.EmbeddingModel,
		sysLogger,
	)

	notebookService := service.NewNotebookService(uowFactory)
	noteService := service.NewNoteService(
		uowFactory,
		publisherService,
		aiClient,
		cfg.Ai.EmbeddingModel,
		natsPub,
		sysLogger,
	)
	enhanceService := service.NewEnhanceService(
		uowFactory,
		aiClient,
		flags,
		extractor,
		publisherService,
		natsPub,
		sysLogger,
	)
	attachmentService := service.NewAttachmentService(uowFactory)
	transcriptService := service.NewTranscriptService(extractor, flags, sysLogger)
	transcribeService := service.NewTranscribeService(transcriptionClient, flags)
	chatService := service.NewChatService(uowFactory, aiClient, natsPub, sysLogger)
	aiConfigService := service.NewAiConfigService(uowFactory, flags)
	notifierService := service.NewNotifierService(natsSub, wsHub, wsLogger)

	return &Container{
		NotebookController:   controller.NewNotebookController(notebookService),
		NoteController:       controller.NewNoteController(noteService),
		EnhanceController:    controller.NewEnhanceController(enhanceService, sysLogger),
		AttachmentController: controller.NewAttachmentController(attachmentService),
		TranscriptController: controller.NewTranscriptController(transcriptService),
		TranscribeController: controller.NewTranscribeController(transcribeService),
		ChatController:       controller.NewChatController(chatService),
		AiConfigController:   controller.NewAiConfigController(aiConfigService),
		RealtimeController:   controller.NewRealtimeController(wsHub, wsLogger),

		ConsumerService: consumerService,
		NotifierService: notifierService,

		WebSocketHub: wsHub,
	}
}
