package bootstrap

import (
	"time"

	"news-rating-be/internal/config"
	"news-rating-be/internal/controller"
	"news-rating-be/internal/pkg/logger"
	"news-rating-be/internal/repository/memory"
	"news-rating-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Dependencies are the pieces loaded before the container is built. main.go
// fails fast while loading them; tests pass fixtures and fakes.
type Dependencies struct {
	Users       map[string]config.AllowedUser
	Predictor   service.Predictor
	Appender    service.RowAppender
	Location    *time.Location
	SysLogger   logger.ILogger
	AuditLogger logger.ILogger
}

type Container struct {
	// Controllers
	PageController  controller.IPageController
	AuthController  controller.IAuthController
	StoryController controller.IStoryController

	AuthService service.IAuthService

	// Background Services (Exposed for main.go to run)
	AuditConsumer service.IAuditConsumerService

	PubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, deps Dependencies) *Container {
	// 1. Core Facades
	sysLogger := deps.SysLogger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	}
	auditLogger := deps.AuditLogger
	if auditLogger == nil {
		auditLogger = sysLogger
	}
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	appender := deps.Appender
	if appender == nil {
		appender = service.DisabledAppender{Reason: "no appender configured"}
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 3. Services
	sessionRepo := memory.NewSessionRepository()
	authService := service.NewAuthService(deps.Users, cfg.Auth, sessionRepo, sysLogger)
	auditService := service.NewAuditService(pubSub, cfg.Audit.Topic, location)
	auditConsumer := service.NewAuditConsumerService(
		pubSub,
		cfg.Audit.Topic,
		appender,
		time.Duration(cfg.Audit.TimeoutSeconds)*time.Second,
		sysLogger,
		auditLogger,
	)
	predictionService := service.NewPredictionService(deps.Predictor, sysLogger)

	// 4. Controllers
	return &Container{
		PageController:  controller.NewPageController(authService, auditService, predictionService, sysLogger, cfg.Auth.CookieSecure),
		AuthController:  controller.NewAuthController(authService, auditService, sysLogger, cfg.Auth.CookieSecure),
		StoryController: controller.NewStoryController(predictionService),
		AuthService:     authService,
		AuditConsumer:   auditConsumer,
		PubSub:          pubSub,
	}
}
