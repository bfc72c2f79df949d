package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/di"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/platform/db/schema"
	platformredis "shop_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("[WARN] failed to load .env:", err)
	}

	// db
	dbCfg := db.LoadConfigFromEnv()
	gdb, err := db.OpenDB(dbCfg)
	if err != nil {
		log.Fatal(err)
	}
	if dbCfg.RunMigrations {
		if err := db.Migrate(gdb, schema.Models()...); err != nil {
			log.Fatal(err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(context.Background(), platformredis.LoadConfigFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Rate limiting is per instance.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	appCfg := di.LoadConfigFromEnv()
	appCfg.QueryTimeout = dbCfg.QueryTimeout
	if appCfg.PasswordEncoding != "bcrypt" {
		slog.Warn("passwords are stored as submitted; set PASSWORD_ENCODING=bcrypt to hash them")
	}

	r, err := di.NewApp(gdb, rdb, appCfg)
	if err != nil {
		log.Fatal(err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
