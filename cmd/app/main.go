package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/dashboard-api/internal/auth"
	"github.com/BuzzLyutic/dashboard-api/internal/config"
	"github.com/BuzzLyutic/dashboard-api/internal/content"
	"github.com/BuzzLyutic/dashboard-api/internal/handler"
	"github.com/BuzzLyutic/dashboard-api/internal/notify"
	"github.com/BuzzLyutic/dashboard-api/internal/repo"
	"github.com/BuzzLyutic/dashboard-api/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Фоновая доставка уведомлений о ревью
	dispatcher := notify.NewDispatcher(notify.Config{
		Dir:          cfg.NotificationsDir,
		WebhookURL:   cfg.WebhookURL,
		WebhookToken: cfg.WebhookToken,
		Workers:      cfg.NotifyWorkers,
	}, logger)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	todoRepo := repo.NewTodoRepo(pool)
	reviewRepo := repo.NewReviewRepo(pool)
	catalog := content.NewCatalog(cfg.ContentDir)

	todoService := service.NewTodoService(todoRepo, cfg.Owner)
	reviewService := service.NewReviewService(reviewRepo, dispatcher)
	blogService := service.NewBlogService(reviewRepo, catalog)

	r := handler.NewRouter(
		handler.NewTodoHandler(todoService, logger),
		handler.NewReviewHandler(reviewService, catalog, logger),
		handler.NewBlogHandler(blogService, logger),
		handler.NewStatsHandler(todoService, reviewService, logger),
		auth.Authenticator([]byte(cfg.SessionSecret), cfg.AllowedEmails, logger),
	)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
