package main

import (
	"context"
	"log"

	"github.com/anusasana/portal/internal/bootstrap"
	"github.com/anusasana/portal/internal/config"
	"github.com/anusasana/portal/internal/repository"
	"github.com/anusasana/portal/internal/server"
	"github.com/anusasana/portal/internal/service"
	"github.com/anusasana/portal/pkg/database"
	"github.com/anusasana/portal/pkg/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to document store: %v", err)
	}

	// Redis is optional: without it, realtime fan-out and rate limiting run
	// in-process only.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, continuing without it: %v", err)
			rdb = nil
		}
	}

	var fileStorage storage.FileStorage
	if cfg.CloudinaryAPIKey != "" {
		fileStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Printf("upload storage unavailable, extracted files will not be retained: %v", err)
		}
	}

	srv := server.New(cfg, db, rdb, fileStorage)

	if cfg.AppEnv == "development" {
		repos := repository.NewMongoSet(db)
		auth := service.NewAuthService(repos.Users, cfg.JWTSecret, cfg.JWTTTLMinutes)
		if err := bootstrap.SeedDemoUsers(context.Background(), auth); err != nil {
			log.Fatalf("failed to seed demo users: %v", err)
		}
	}

	if err := srv.Run(context.Background(), ":"+cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
