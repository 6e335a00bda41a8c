package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matheusgmdr7/contratando2/internal/config"
	"github.com/matheusgmdr7/contratando2/internal/db"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/goroutine"
	httpRouter "github.com/matheusgmdr7/contratando2/internal/http/router"
	"github.com/matheusgmdr7/contratando2/internal/infrastructure/cache"
	"github.com/matheusgmdr7/contratando2/internal/infrastructure/email"
	"github.com/matheusgmdr7/contratando2/internal/infrastructure/persistence"
	"github.com/matheusgmdr7/contratando2/internal/infrastructure/storage"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/handler"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/service"
	"github.com/matheusgmdr7/contratando2/internal/usecase/adminuser"
	"github.com/matheusgmdr7/contratando2/internal/usecase/commission"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricetable"
	"github.com/matheusgmdr7/contratando2/internal/usecase/pricing"
	"github.com/matheusgmdr7/contratando2/internal/usecase/product"
	"github.com/matheusgmdr7/contratando2/internal/usecase/proposal"
	"github.com/matheusgmdr7/contratando2/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	mainLog := logger.Component("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
	if err != nil {
		mainLog.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		mainLog.WithError(err).Fatal("main: ошибка миграций")
	}

	// Репозитории.
	directSource := persistence.NewDirectProposalSource(dbConn)
	brokerSource := persistence.NewBrokerProposalSource(dbConn)
	tableRepo := persistence.NewPriceTableRepositoryAdapter(dbConn)
	productRepo := persistence.NewProductRepositoryAdapter(dbConn)
	commissionRepo := persistence.NewCommissionRepositoryAdapter(dbConn)
	adminRepo := persistence.NewAdminUserRepositoryAdapter(dbConn)
	brokerRepo := persistence.NewBrokerRepositoryAdapter(dbConn)

	// Инфраструктура.
	origins := cache.NewOriginCache(cfg.OriginCacheTTL)

	files, err := storage.NewBucketStorage(cfg.StoragePath, cfg.StoragePublicURL, cfg.MaxUploadSizeMB)
	if err != nil {
		mainLog.WithError(err).Fatal("main: ошибка инициализации хранилища")
	}

	var mailer repository.EmailSender
	if cfg.EmailFunctionURL == "" {
		mainLog.Warn("main: EMAIL_FUNCTION_URL не задан, письма только пишутся в лог")
		mailer = email.NewLogSender()
	} else {
		mailer = email.NewFunctionClient(cfg.EmailFunctionURL, cfg.EmailFunctionToken, cfg.EmailTimeout, cfg.EmailRatePerSecond).
			WithSenderName(cfg.EmailSenderName)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	runner := goroutine.NewRecoveryHandler(logger.Component("goroutine"))
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(adminRepo, brokerRepo, tokenManager)

	// Use cases.
	tablePrice := pricing.NewResolveTablePriceUseCase(tableRepo)
	productPrice := pricing.NewResolveProductPriceUseCase(productRepo, tableRepo)

	events := proposal.NewNotifications(mailer, hub, runner)
	unifier := proposal.NewUnifier(directSource, brokerSource, origins, events)
	createProposal := proposal.NewCreateProposalUseCase(unifier, tablePrice, productPrice)
	sendValidation := proposal.NewSendValidationEmailUseCase(unifier, mailer, cfg.AppPublicURL)
	signProposal := proposal.NewSignProposalUseCase(unifier)
	attachDocuments := proposal.NewAttachDocumentsUseCase(unifier, files, storage.Inspector{})

	// Хэндлеры.
	healthHandler := handler.NewHealthHandler(dbConn)
	authHandler := handler.NewAuthHandler(authService)
	wsHandler := handler.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins)
	proposalHandler := handler.NewProposalHandler(unifier, createProposal, sendValidation, signProposal, attachDocuments, cfg.MaxUploadSizeMB<<20)
	priceTableHandler := handler.NewPriceTableHandler(
		pricetable.NewListPriceTablesUseCase(tableRepo),
		pricetable.NewGetPriceTableUseCase(tableRepo),
		pricetable.NewCreatePriceTableUseCase(tableRepo),
		pricetable.NewUpdatePriceTableUseCase(tableRepo),
		pricetable.NewBracketUseCase(tableRepo),
		tablePrice,
	)
	productHandler := handler.NewProductHandler(
		product.NewProductUseCase(productRepo),
		pricetable.NewProductTablesUseCase(productRepo, tableRepo),
		productPrice,
	)
	commissionHandler := handler.NewCommissionHandler(commission.NewCommissionUseCase(commissionRepo))
	adminUserHandler := handler.NewAdminUserHandler(adminuser.NewAdminUserUseCase(adminRepo))

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, tokenManager,
		healthHandler, authHandler, wsHandler, proposalHandler,
		priceTableHandler, productHandler, commissionHandler, adminUserHandler,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	mainLog.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Component("main").WithError(err).Error("main: ошибка закрытия базы")
	}
}
