package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant/internal/config"
	"restaurant/internal/handler"
	"restaurant/internal/infra/db"
	"restaurant/internal/infra/mq"
	infraRepo "restaurant/internal/infra/repository"
	"restaurant/internal/infra/token"
	"restaurant/internal/server"
	"restaurant/internal/usecase"
	auth "restaurant/internal/usecase/auth_usecase"
	"restaurant/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
	log.Info("server stopped")
}

// run owns every resource; its defers finish before main exits.
func run(cfg config.Config, log *logrus.Logger) error {
	//DBマイグレーション -> 接続
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.WithError(err).Error("failed to close database connection")
		}
	}()

	//order events (AMQP_URL未設定なら何もしない)
	var events usecase.OrderEventPublisher = usecase.NopPublisher{}
	if cfg.AMQPURL != "" {
		pub, err := mq.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer pub.Close()
		events = pub
		log.WithField("exchange", cfg.AMQPExchange).Info("publishing order events")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	tableRepo := infraRepo.NewTableGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := usecase.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	jwt := token.NewJWT(cfg.JWTSecret, cfg.SessionTTL)
	catalogValidator := validator.NewCatalogValidator(categoryRepo)

	//Usecase生成
	loginUC := auth.NewLoginUsecase(userRepo, verifier, jwt, clock)
	sessionUC := auth.NewSessionUsecase(userRepo)
	menuUC := usecase.NewMenuUsecase(menuRepo, categoryRepo, catalogValidator)
	tableUC := usecase.NewTableUsecase(tableRepo, catalogValidator)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, events, clock, log)
	statsUC := usecase.NewStatsUsecase(statsRepo, clock)

	//Handler生成
	h := server.Handlers{
		Guard:  handler.Guard{Tokens: jwt, Users: userRepo},
		Auth:   handler.NewAuthHandler(loginUC, sessionUC, cfg.CookieSecure),
		Menu:   handler.NewMenuHandler(menuUC),
		Tables: handler.NewTableHandler(tableUC),
		Orders: handler.NewOrderHandler(orderUC),
		Stats:  handler.NewStatsHandler(statsUC),
	}
	if cfg.SeedEnabled {
		h.Seed = handler.NewSeedHandler(usecase.NewSeedUsecase(txm, hasher, log))
		log.Warn("POST /api/seed is enabled")
	}

	srv := server.New(h, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down...")
		if err := srv.Shutdown(cfg.ShutdownTimeout); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
