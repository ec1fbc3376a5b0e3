package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"schoolbook/internal/auth"
	"schoolbook/internal/config"
	"schoolbook/internal/db"
	internalhttp "schoolbook/internal/http"
	"schoolbook/internal/identity"
	"schoolbook/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf(".env load error: %v", err)
	}
	cfg := config.Load()
	if cfg.SubjectJWTSecret != cfg.JWTSecret {
		log.Printf("warning: subject routes verify with SUBJECT_JWT_SECRET, tokens from /login will be rejected there")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
		log.Printf("migrations applied")
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis ping failed: %v", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}()
	} else {
		log.Printf("REDIS_ADDR not set, token revocation disabled")
	}

	revoker := auth.NewRevoker(redisClient)
	store := repository.NewStore(pool)
	accounts := identity.NewService(store, cfg.JWTSecret, cfg.JWTIssuer, revoker,
		identity.UserPolicy(cfg.UserTokenTTL),
		identity.TeacherPolicy(cfg.TeacherTokenTTL),
	)
	server := internalhttp.NewServer(cfg, store, accounts, revoker)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("schoolbook listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
