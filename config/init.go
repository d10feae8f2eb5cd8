package config

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App holds the long-lived infrastructure shared by the server and the CLI
type App struct {
	Config *Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
	Melody *melody.Melody
	Cron   *cron.Cron
}

// InitApp connects the database and Redis and builds the router, hub and scheduler
func InitApp(cfg *Config) (*App, error) {
	db, err := ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := ConnectRedis(cfg)
	if err != nil {
		// the cache is optional; listings fall back to the database
		log.Printf("Warning: %v", err)
		rdb = nil
	}

	m := melody.New()
	m.Config.MaxMessageSize = 4096

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Router: NewRouter(cfg),
		Melody: m,
		Cron:   cron.New(cron.WithLocation(cfg.Location())),
	}

	log.Println("All components initialized successfully")
	return app, nil
}

// NewRouter returns a gin engine with CORS applied
func NewRouter(cfg *Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID")
	configCors.AllowCredentials = true
	if len(cfg.CorsOrigins) > 0 {
		configCors.AllowOrigins = cfg.CorsOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)
	return router
}

// Close releases the database and Redis connections
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}
	}
}
