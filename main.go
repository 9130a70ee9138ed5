package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"smartcity-be/config"
	"smartcity-be/controllers"
	"smartcity-be/events"
	"smartcity-be/issues"
	"smartcity-be/logger"
	"smartcity-be/middlewares"
	"smartcity-be/reference"
	"smartcity-be/routes"
	"smartcity-be/storage"
	"smartcity-be/users"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	var store storage.Store
	var redisClient *redis.Client

	switch cfg.StoreBackend {
	case "redis":
		client, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		redisClient = client
		store = storage.NewRedis(client, cfg.StorePrefix)
		log.Info().Str("addr", cfg.RedisAddress).Msg("using redis store")
	case "mongo":
		db, err := config.ConnectMongo(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb connection failed")
		}
		store = storage.NewMongo(db, "kv")
		log.Info().Str("db", cfg.MongoDatabase).Msg("using mongodb store")
	default:
		store = storage.NewMemory()
		log.Warn().Msg("using in-memory store; state is lost on restart")
	}

	// The rate limiter needs Redis even when the store itself lives
	// elsewhere.
	if redisClient == nil && cfg.IssueRateLimit > 0 {
		client, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed (rate limiter)")
		}
		redisClient = client
	}

	var sink issues.Notifier
	if cfg.AMQPURI != "" {
		pub, closeFn, err := events.Connect(cfg.AMQPURI, cfg.AMQPQueue, log)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq connection failed")
		}
		defer closeFn()
		sink = pub
		log.Info().Str("queue", cfg.AMQPQueue).Msg("publishing issue events")
	}

	issueRepo := issues.NewRepository(store)
	issueSvc := issues.NewService(issueRepo, sink, log)
	userRepo := users.NewRepository(store)
	refRepo := reference.NewRepository(store)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.Trace())
	r.Use(func(c *gin.Context) {
		c.Next()
		log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).
			Int("s", c.Writer.Status()).Str("trace", middlewares.GetTraceID(c)).Msg("http")
	})
	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
		corsCfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(corsCfg))
	}

	authCtrl := controllers.NewAuthController(userRepo, cfg, log)
	issueCtrl := controllers.NewIssueController(issueSvc, log)
	adminCtrl := controllers.NewAdminController(issueSvc, log)
	refCtrl := controllers.NewReferenceController(refRepo, log)

	routes.AuthRoutes(r, authCtrl, cfg.JWTSecret)
	routes.IssueRoutes(r, issueCtrl, cfg.JWTSecret, redisClient, cfg.IssueRateLimit)
	routes.AdminRoutes(r, adminCtrl, authCtrl, cfg.JWTSecret)
	routes.ReferenceRoutes(r, refCtrl, cfg.JWTSecret)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
