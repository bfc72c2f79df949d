package di

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shop_backend/internal/app/router"
	productadapters "shop_backend/internal/feature/product/adapters"
	producthandler "shop_backend/internal/feature/product/transport/handler"
	productusecase "shop_backend/internal/feature/product/usecase"
	useradapters "shop_backend/internal/feature/user/adapters"
	userhandler "shop_backend/internal/feature/user/transport/handler"
	userusecase "shop_backend/internal/feature/user/usecase"
	platformhandler "shop_backend/internal/platform/http/handler"
	"shop_backend/internal/platform/http/middleware"
)

// Config holds the HTTP-level settings of the application.
type Config struct {
	// QueryTimeout bounds the store work of one request. Zero disables it.
	QueryTimeout time.Duration

	// RateLimitPerMinute is the per-client request budget. Zero disables rate limiting.
	RateLimitPerMinute int

	// PasswordEncoding is "plain" (default) or "bcrypt".
	PasswordEncoding string
}

// LoadConfigFromEnv reads RATE_LIMIT_PER_MINUTE and PASSWORD_ENCODING.
// QueryTimeout is taken from the database config by the caller.
func LoadConfigFromEnv() Config {
	cfg := Config{
		RateLimitPerMinute: 120,
		PasswordEncoding:   os.Getenv("PASSWORD_ENCODING"),
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid RATE_LIMIT_PER_MINUTE, using default", "value", v, "default", cfg.RateLimitPerMinute)
		} else {
			cfg.RateLimitPerMinute = n
		}
	}
	return cfg
}

// NewApp wires repositories, usecases and handlers into a router.
// rdb may be nil.
func NewApp(gdb *gorm.DB, rdb *redis.Client, cfg Config) (*gin.Engine, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := useradapters.NewUserGorm(gdb)
	productLister := useradapters.NewProductLister(gdb)
	productRepo := productadapters.NewProductGorm(gdb)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, productLister, userusecase.NewPasswordEncoder(cfg.PasswordEncoding))
	productUC := productusecase.NewProductUsecase(productRepo, userRepo)

	// Handler
	userH := userhandler.NewUserHandler(userUC)
	productH := producthandler.NewProductHandler(productUC)
	healthH := platformhandler.NewHealthHandler(sqlDB)

	mws := []gin.HandlerFunc{middleware.RequestLogger()}
	if cfg.RateLimitPerMinute > 0 {
		mws = append(mws, middleware.RateLimit(NewRateLimiter(rdb, cfg.RateLimitPerMinute)))
	}
	mws = append(mws, middleware.RequestTimeout(cfg.QueryTimeout))

	return router.NewRouter(userH, productH, healthH, mws...), nil
}
