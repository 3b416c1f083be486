package bootstrap

import (
	"log"

	"healthlync-be/internal/config"
	"healthlync-be/internal/controller"
	"healthlync-be/internal/pkg/logger"
	"healthlync-be/internal/pkg/mailer"
	"healthlync-be/internal/repository/implementation"
	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/internal/service"
	"healthlync-be/pkg/embedding"
	"healthlync-be/pkg/llm/factory"
	"healthlync-be/pkg/rag/search"
	"healthlync-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	UserController   controller.IUserController
	RagController    controller.IRagController
	ReportController controller.IReportController

	// Background services, run by main.go
	ConsumerService service.IConsumerService
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
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
			cfg.Ai.EmbeddingDimensions,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		provider, err := embedding.NewOpenAIProvider(
			cfg.Keys.OpenAI,
			"",
			cfg.Ai.EmbeddingModel,
			cfg.Ai.EmbeddingDimensions,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
		}
		embeddingProvider = provider
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Supporting infrastructure
	jobStore := store.NewJobStatusStore()
	retriever := search.NewRetriever(implementation.NewMedicalDocumentRepository(db))

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EmbedReportTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedReportTopic,
		uowFactory,
		embeddingProvider,
		jobStore,
	)

	authService := service.NewAuthService(uowFactory, emailService)
	userService := service.NewUserService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, embeddingProvider)
	reportService := service.NewReportService(uowFactory, publisherService, jobStore)
	ragService := service.NewRagService(
		embeddingProvider,
		llmProvider,
		retriever,
		cfg.Rag,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		UserController:   controller.NewUserController(userService),
		RagController:    controller.NewRagController(ragService, documentService),
		ReportController: controller.NewReportController(reportService),

		ConsumerService: consumerService,
	}
}
