package bootstrap

import (
	"context"
	"log"

	"github.com/besmartbusiness/lawyer-app/internal/config"
	"github.com/besmartbusiness/lawyer-app/internal/controller"
	"github.com/besmartbusiness/lawyer-app/internal/handler"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/logger"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/mailer"
	"github.com/besmartbusiness/lawyer-app/internal/repository/memory"
	"github.com/besmartbusiness/lawyer-app/internal/repository/unitofwork"
	"github.com/besmartbusiness/lawyer-app/internal/service"
	"github.com/besmartbusiness/lawyer-app/internal/websocket"
	"github.com/besmartbusiness/lawyer-app/pkg/blob"
	"github.com/besmartbusiness/lawyer-app/pkg/embedding"
	"github.com/besmartbusiness/lawyer-app/pkg/llm/factory"
	transcribeGemini "github.com/besmartbusiness/lawyer-app/pkg/transcribe/gemini"

	pkgNats "github.com/besmartbusiness/lawyer-app/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DraftingController  controller.IDraftingController
	AnalysisController  controller.IAnalysisController
	DictationController controller.IDictationController
	DocumentController  controller.IDocumentController
	RetrievalController controller.IRetrievalController

	// Background services, exposed for main.go to run
	ConsumerService service.IConsumerService

	PipelineHandler *handler.PipelineHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	transcriber := transcribeGemini.NewGeminiTranscriber(cfg.Keys.GoogleGemini, cfg.Ai.TranscriptionModel)

	// Blob storage. An empty upload dir switches to inline data URIs, which
	// the transcriber accepts just like fetchable URLs.
	var blobStore blob.Store
	if cfg.App.UploadDir == "" {
		blobStore = blob.NewInlineStore()
		log.Printf("[INFO] Using inline blob store")
	} else {
		localStore, err := blob.NewLocalStore(cfg.App.UploadDir, cfg.App.BaseURL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize blob store: %v", err)
		}
		blobStore = localStore
	}

	recordingRepo := memory.NewRecordingRepository()

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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

	wsLogger := logger.NewIsolatedLogger("logs/pipeline.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()
	notifier := websocket.NewPipelineNotifier(wsHub)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopicName,
		uowFactory,
		embeddingProvider,
	)

	retrievalService := service.NewRetrievalService(uowFactory, sysLogger)
	draftingService := service.NewDraftingService(retrievalService, llmProvider, sysLogger)
	citationService := service.NewCitationService(llmProvider, cfg.Drafting.MaxCitations, sysLogger)
	analysisService := service.NewAnalysisService(llmProvider, sysLogger)
	dictationService := service.NewDictationService(recordingRepo, blobStore, transcriber, notifier, sysLogger)
	orchestratorService := service.NewOrchestratorService(
		draftingService,
		citationService,
		dictationService,
		recordingRepo,
		notifier,
		cfg.Drafting.DraftAfterStop,
		sysLogger,
	)
	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		embeddingProvider,
		natsPub,
		emailService,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		DraftingController:  controller.NewDraftingController(draftingService, citationService, orchestratorService),
		AnalysisController:  controller.NewAnalysisController(analysisService),
		DictationController: controller.NewDictationController(dictationService, orchestratorService),
		DocumentController:  controller.NewDocumentController(documentService),
		RetrievalController: controller.NewRetrievalController(retrievalService),

		ConsumerService: consumerService,
		PipelineHandler: handler.NewPipelineHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}
