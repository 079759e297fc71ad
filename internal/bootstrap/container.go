package bootstrap

import (
	"log"
	"time"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/pipeline"
	"doc-analytics-be/internal/pkg/logger"
	"doc-analytics-be/internal/repository/unitofwork"
	"doc-analytics-be/internal/service"
	"doc-analytics-be/internal/tcp"
	"doc-analytics-be/pkg/analysis"
	"doc-analytics-be/pkg/keywords"

	pktNats "doc-analytics-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	Server *tcp.Server

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger        logger.ILogger
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Algorithm Adapters
	remote := analysis.NewRemoteProvider(cfg.Analysis.AlgorithmServiceURL)
	log.Printf("[INFO] Using algorithm service: %s", remote.BaseURL)
	ranker := analysis.NewCosineRanker()
	extractor := keywords.NewExtractor()

	orchestrator := pipeline.NewOrchestrator(
		uowFactory,
		remote, // Reducer
		remote, // Clusterer
		remote, // TopicExtractor
		ranker,
		extractor,
		cfg.Analysis,
		cfg.TCP.PipelineTimeout,
		sysLogger,
	)

	// 4. Services
	resultCache := cache.New(cfg.Analysis.CacheTTL, 10*time.Minute)

	publisherService := service.NewPublisherService(constant.RunEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.RunEventsTopic, natsPub)

	analysisService := service.NewAnalysisService(orchestrator, publisherService, resultCache, sysLogger)
	resultService := service.NewResultService(uowFactory, resultCache, cfg.Analysis, sysLogger)

	// 5. Transport
	dispatcher := tcp.NewDispatcher(analysisService, resultService, sysLogger)
	server := tcp.NewServer(cfg.TCP, dispatcher, sysLogger)

	return &Container{
		Server:          server,
		ConsumerService: consumerService,
		Logger:          sysLogger,
		NatsPublisher:   natsPub,
	}
}
