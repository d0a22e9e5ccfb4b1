package http

import (
	"math/rand/v2"
	"time"

	"EDT/internal/initial"
	jwtMiddleware "EDT/internal/middleware/jwt"
	traceMiddleware "EDT/internal/middleware/trace"
	aiService "EDT/internal/modules/ai/application/service"
	aiPersistence "EDT/internal/modules/ai/infrastructure/persistence"
	"EDT/internal/modules/ai/infrastructure/pipeline"
	"EDT/internal/modules/ai/infrastructure/reader"
	aiHandler "EDT/internal/modules/ai/interface/http"
	chatService "EDT/internal/modules/chat/application/service"
	chatPersistence "EDT/internal/modules/chat/infrastructure/persistence"
	chatHandler "EDT/internal/modules/chat/interface/http"
	dashboardService "EDT/internal/modules/dashboard/application/service"
	dashboardHandler "EDT/internal/modules/dashboard/interface/http"
	goalService "EDT/internal/modules/goal/application/service"
	goalPersistence "EDT/internal/modules/goal/infrastructure/persistence"
	goalHandler "EDT/internal/modules/goal/interface/http"
	integrationService "EDT/internal/modules/integration/application/service"
	integrationPersistence "EDT/internal/modules/integration/infrastructure/persistence"
	integrationHandler "EDT/internal/modules/integration/interface/http"
	notificationService "EDT/internal/modules/notification/application/service"
	notificationPersistence "EDT/internal/modules/notification/infrastructure/persistence"
	notificationHandler "EDT/internal/modules/notification/interface/http"
	projectService "EDT/internal/modules/project/application/service"
	projectPersistence "EDT/internal/modules/project/infrastructure/persistence"
	projectHandler "EDT/internal/modules/project/interface/http"
	securityService "EDT/internal/modules/security/application/service"
	"EDT/internal/modules/security/infrastructure/captcha"
	securityPersistence "EDT/internal/modules/security/infrastructure/persistence"
	securityHandler "EDT/internal/modules/security/interface/http"
	techlogService "EDT/internal/modules/techlog/application/service"
	techlogPersistence "EDT/internal/modules/techlog/infrastructure/persistence"
	techlogHandler "EDT/internal/modules/techlog/interface/http"
	userService "EDT/internal/modules/user/application/service"
	userPersistence "EDT/internal/modules/user/infrastructure/persistence"
	userHandler "EDT/internal/modules/user/interface/http"
	"EDT/pkg/ssl"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// 集成同步模拟的失败概率
const integrationFailureRate = 0.1

// NewEngine 组装全部路由；依赖全部来自 app，不读取全局状态
func NewEngine(app *initial.App) *gin.Engine {
	conf := app.Conf
	ge := gin.New()
	ge.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = conf.SecurityConfig.AllowOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", jwtMiddleware.SessionHeader, traceMiddleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{traceMiddleware.HeaderRequestID, traceMiddleware.HeaderTraceID}
	ge.Use(cors.New(corsConfig))
	ge.Use(ssl.SecureHandler(conf.MainConfig.Host, conf.MainConfig.Port, conf.SecurityConfig.SSLRedirect))
	ge.Use(otelgin.Middleware(serviceName(app)))
	ge.Use(traceMiddleware.RequestContext())

	db := app.DB

	// 仓储
	goalRepo := goalPersistence.NewGoalRepository(db)
	logRepo := techlogPersistence.NewTechnicalLogRepository(db)
	projectRepo := projectPersistence.NewProjectRepository(db)
	chatRepo := chatPersistence.NewChatRepository(db)
	profileRepo := userPersistence.NewUserProfileRepository(db)
	insightRepo := aiPersistence.NewInsightRepository(db)
	skillRepo := aiPersistence.NewSkillRepository(db)
	notificationRepo := notificationPersistence.NewNotificationRepository(db)
	integrationRepo := integrationPersistence.NewIntegrationRepository(db)

	// AI
	var cache pipeline.Cache
	if app.Cache != nil {
		cache = app.Cache
	}
	cacheTTL := time.Duration(conf.AIConfig.ChatModel.CacheTTLSeconds) * time.Second
	engine := pipeline.NewEngine(app.Generator, cache, cacheTTL)
	records := reader.NewRecordReader(goalRepo, logRepo, projectRepo)

	// 服务
	simulator := integrationService.NewSimulator(
		time.Duration(conf.MainConfig.DemoDelayMs)*time.Millisecond,
		integrationFailureRate,
		rand.Uint64(),
	)
	sessionTTL := time.Duration(conf.SecurityConfig.SessionTTLHours) * time.Hour

	goalH := goalHandler.NewGoalHandler(goalService.NewGoalService(goalRepo))
	logH := techlogHandler.NewTechnicalLogHandler(techlogService.NewTechnicalLogService(logRepo))
	projectH := projectHandler.NewProjectHandler(projectService.NewProjectService(projectRepo))
	chatH := chatHandler.NewSessionHandler(chatService.NewSessionService(chatRepo))
	profileH := userHandler.NewUserProfileHandler(userService.NewUserProfileService(profileRepo))
	notificationH := notificationHandler.NewNotificationHandler(notificationService.NewNotificationService(notificationRepo, goalRepo))
	integrationH := integrationHandler.NewIntegrationHandler(integrationService.NewIntegrationService(integrationRepo, simulator))
	securityH := securityHandler.NewSecurityHandler(
		securityService.NewSecurityService(
			securityPersistence.NewSessionRepository(db),
			securityPersistence.NewActivityRepository(db),
			securityPersistence.NewSettingsRepository(db),
			sessionTTL,
		),
		captcha.NewVerifier(conf.CaptchaConfig),
	)
	aiH := aiHandler.NewAIHandler(
		aiService.NewGenerationService(engine, logRepo, profileRepo, skillRepo),
		aiService.NewSkillService(engine, records, skillRepo),
		aiService.NewInsightService(engine, records, insightRepo),
		aiService.NewCopilotService(app.Generator, records, chatRepo),
	)
	dashboardH := dashboardHandler.NewDashboardHandler(dashboardService.NewDashboardService(
		goalRepo, logRepo, projectRepo, insightRepo, notificationRepo,
	))

	api := ge.Group("/api")
	api.GET("/health", NewHealthHandler(app).Health)
	api.POST("/auth/verify-captcha", securityH.VerifyCaptcha)

	authed := api.Group("")
	authed.Use(jwtMiddleware.Auth(conf.JwtConfig))

	authed.GET("/goals", goalH.List)
	authed.POST("/goals", goalH.Create)
	authed.GET("/goals/:id", goalH.Get)
	authed.PUT("/goals/:id", goalH.Update)
	authed.DELETE("/goals/:id", goalH.Delete)

	authed.GET("/technical-logs", logH.List)
	authed.POST("/technical-logs", logH.Create)
	authed.GET("/technical-logs/:id", logH.Get)
	authed.PUT("/technical-logs/:id", logH.Update)
	authed.DELETE("/technical-logs/:id", logH.Delete)

	authed.GET("/chat/sessions", chatH.ListSessions)
	authed.POST("/chat/sessions", chatH.CreateSession)
	authed.PUT("/chat/sessions/:id", chatH.RenameSession)
	authed.DELETE("/chat/sessions/:id", chatH.DeleteSession)
	authed.GET("/chat/sessions/:id/messages", chatH.ListMessages)
	authed.POST("/chat/sessions/:id/messages", chatH.AppendMessage)

	authed.GET("/profile", profileH.Get)
	authed.PUT("/profile", profileH.Save)

	projectH.Register(authed)
	notificationH.Register(authed)
	integrationH.Register(authed)
	securityH.Register(authed)
	aiH.Register(authed)
	dashboardH.Register(authed)

	return ge
}

func serviceName(app *initial.App) string {
	if name := app.Conf.ObservabilityConfig.ServiceName; name != "" {
		return name
	}
	return app.Conf.MainConfig.AppName
}
