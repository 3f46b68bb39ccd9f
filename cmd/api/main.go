package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	cacheAdapter "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/cache/adapter"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/database"
	queueAdapter "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/adapter"
	qport "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/port"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/realtime"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/task"
	repoAdapter "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/adapter"
	httpHandler "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/presentation/http"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or could not be loaded", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.NewPoolFromEnv(connectCtx)
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := repoAdapter.NewPgChatRepository(pool)

	verifier, err := auth.NewVerifierFromEnv()
	if err != nil {
		slog.Error("failed to configure token verifier", "err", err)
		os.Exit(1)
	}

	// Redis backs both the token revocation check and the task queue.
	// The service still runs without it, minus those two features.
	var queueClient qport.Client
	if cache, err := cacheAdapter.NewRedisAdapter(); err != nil {
		slog.Warn("redis unavailable; revocation check and queue disabled", "err", err)
	} else {
		defer cache.Close()
		verifier = verifier.WithRevocation(cache)

		client, err := queueAdapter.NewAsynqClientFromEnv()
		if err != nil {
			slog.Warn("queue client unavailable", "err", err)
		} else {
			defer client.Close()
			queueClient = client
		}

		srv, err := queueAdapter.NewAsynqServer()
		if err != nil {
			slog.Warn("queue worker unavailable", "err", err)
		} else {
			task.RegisterSendMessageTask(srv, repo)
			go func() {
				if err := srv.Run(ctx); err != nil {
					slog.Error("queue worker stopped", "err", err)
				}
			}()
		}
	}

	hub := realtime.NewHub()
	defer hub.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	httpHandler.RegisterRoutes(r, repo, verifier, hub, queueClient)

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(); err != nil {
		slog.Error("http server stopped", "err", err)
		os.Exit(1)
	}
}
