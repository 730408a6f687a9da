package main

import (
	"context"

	"github.com/amoryapp/amory-backend/internal/app"
	"github.com/amoryapp/amory-backend/internal/auth"
	"github.com/amoryapp/amory-backend/internal/cache"
	"github.com/amoryapp/amory-backend/internal/config"
	"github.com/amoryapp/amory-backend/internal/db"
	"github.com/amoryapp/amory-backend/internal/logger"
	"github.com/amoryapp/amory-backend/internal/realtime"
	"github.com/amoryapp/amory-backend/internal/server"
	"github.com/amoryapp/amory-backend/internal/service/inbox"
	"github.com/amoryapp/amory-backend/internal/service/messaging"
	"github.com/amoryapp/amory-backend/internal/service/profile"
	"github.com/amoryapp/amory-backend/internal/service/relationship"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)
	sessions := auth.NewSessions(cfg)
	broker := realtime.NewBroker(redisCache.Client, log)

	relationshipSvc := relationship.NewService(appCtx)
	messagingSvc := messaging.NewService(appCtx, broker)
	inboxSvc := inbox.NewService(appCtx)
	profileSvc := profile.NewService(appCtx)

	public := []server.Registrar{
		auth.NewHandler(appCtx, sessions),
	}
	protected := []server.Registrar{
		relationship.NewHandler(relationshipSvc),
		messaging.NewHandler(messagingSvc),
		inbox.NewHandler(inboxSvc),
		profile.NewHandler(profileSvc),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	router := server.NewRouter(cfg, sessions.RequireAuth(), public, protected)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.Start(cfg, router); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
