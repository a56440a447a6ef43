package routes

import (
	"context"
	"strconv"

	_ "sms_invoicer/docs" // swag init output
	"sms_invoicer/internal/adapter/http/handlers"
	"sms_invoicer/internal/adapter/persistence/repository"
	"sms_invoicer/internal/infrastructure/config"
	"sms_invoicer/internal/infrastructure/database"
	"sms_invoicer/internal/infrastructure/lock"
	"sms_invoicer/internal/infrastructure/logger"
	"sms_invoicer/internal/infrastructure/payments"
	"sms_invoicer/internal/infrastructure/pdf"
	"sms_invoicer/internal/infrastructure/sms"
	"sms_invoicer/internal/infrastructure/storage"
	"sms_invoicer/internal/usecase"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

// Run will start the server
func Run() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	setMiddlewares(log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes(cfg, log)

	log.Info("[http] listening", "port", cfg.Port, "app_env", cfg.AppEnv)
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Fatal("Failed to startup the application", "err", err)
	}
}

func getRoutes(cfg config.Config, log *logger.Logger) {
	awsCfg, err := database.NewAWSConfigFromEnv(context.Background())
	if err != nil {
		log.Fatal("failed to create aws config", "err", err)
	}
	ddb := database.NewDynamoDBClient(awsCfg)

	businessRepo := repository.NewBusinessDynamoRepository(ddb, cfg.BusinessesTable)
	clientRepo := repository.NewClientDynamoRepository(ddb, cfg.ClientsTable)
	conversationRepo := repository.NewConversationDynamoRepository(ddb, cfg.ConversationsTable)
	documentRepo := repository.NewDocumentDynamoRepository(ddb, cfg.DocumentsTable, cfg.CountersTable)
	messageRepo := repository.NewMessageLogDynamoRepository(ddb, cfg.MessagesTable)

	var fileStorage interfaces.IFileStorage
	if s3Storage, err := storage.NewS3Storage(database.NewS3Client(awsCfg, cfg.S3Endpoint), cfg.S3Bucket, cfg.PDFURLTTL); err != nil {
		log.Warn("PDF storage not configured; documents are created without PDF", "err", err)
	} else {
		fileStorage = s3Storage
	}

	var paymentGateway interfaces.IPaymentLinkGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentCurrency, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("Mercado Pago gateway not configured; invoices are created without payment link", "err", err)
	} else {
		paymentGateway = mpGateway
	}

	notifier, err := sms.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.SMSMock, log)
	if err != nil {
		log.Fatal("SMS notifier not configured (set SMS_MOCK=true for local runs)", "err", err)
	}

	var locker interfaces.ITurnLocker = lock.NewMemoryLocker()
	if cfg.RedisAddr != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.RedisAddr, cfg.RedisPassword, cfg.TurnLockTTL, log)
		if err != nil {
			log.Fatal("failed to connect to redis", "err", err)
		}
		locker = redisLocker
	}

	var validator handlers.SignatureValidator
	if cfg.TwilioValidateSignature {
		validator = sms.NewSignatureValidator(cfg.TwilioAuthToken)
	}

	documentUseCase := usecase.NewDocumentUseCase(documentRepo, pdf.NewRenderer(), fileStorage, paymentGateway, cfg.AppURL, log)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, clientRepo, documentUseCase, log)
	businessUseCase := usecase.NewBusinessUseCase(businessRepo)
	clientUseCase := usecase.NewClientUseCase(businessRepo, clientRepo)
	exportUseCase := usecase.NewExportUseCase(businessRepo, documentRepo, cfg.PaymentCurrency, log)
	smsUseCase := usecase.NewSMSUseCase(usecase.SMSDependencies{
		Businesses:    businessRepo,
		Conversations: conversationRepo,
		Messages:      messageRepo,
		Notifier:      notifier,
		Locker:        locker,
		Resolver:      usecase.NewClientResolver(clientRepo),
		Dialogue:      conversationUseCase,
		Documents:     documentUseCase,
		OnboardingURL: cfg.OnboardingURL(),
		Log:           log,
	})

	twilioHandler := handlers.NewTwilioHandler(smsUseCase, validator, cfg.AppURL, log)
	businessHandler := handlers.NewBusinessHandler(businessUseCase)
	documentHandler := handlers.NewDocumentHandler(documentUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)
	exportHandler := handlers.NewExportHandler(exportUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addTwilioRoutes(v1, twilioHandler)
	addBusinessRoutes(v1, businessHandler)
	addDocumentRoutes(v1, documentHandler)
	addClientRoutes(v1, clientHandler)
	addExportRoutes(v1, exportHandler)
}

func setMiddlewares(log *logger.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("Recovered from panic", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatus(500)
	}))
}
