package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffdir/staffdir/handlers"
	"github.com/staffdir/staffdir/internal/config"
	"github.com/staffdir/staffdir/internal/database"
	emphandler "github.com/staffdir/staffdir/internal/employee/handler"
	"github.com/staffdir/staffdir/internal/employee/repository"
	"github.com/staffdir/staffdir/internal/employee/service"
	"github.com/staffdir/staffdir/internal/sessions"
	"github.com/staffdir/staffdir/internal/tokens"
	"github.com/staffdir/staffdir/internal/users"
	"github.com/staffdir/staffdir/pkg/logger"
	"github.com/staffdir/staffdir/pkg/metrics"
	"github.com/staffdir/staffdir/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware so the SPA frontend can talk to us during
	// dev/test. Production deployments sit behind a stricter proxy policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Connect to Redis early so the rate limiter and token blacklist can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to the in-memory employee repository when it never comes up.
	ctx := context.Background()
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if err == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if mongoClient != nil {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	var empRepo repository.Repository
	var userSvc *users.Service
	if mongoClient != nil {
		db := mongoClient.Database(cfg.MongoDB.Database)
		empRepo = repository.NewMongoRepo(db.Collection("employees"))
		userSvc = users.NewService(users.NewMongoUserRepository(db.Collection("users")))
	} else {
		logger.Warn("MongoDB unavailable; using in-memory employee repository (records will not survive restarts)")
		empRepo = repository.NewMemoryRepo()
	}

	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
	}

	verifier := tokens.NewVerifier(cfg.JWT.Secret)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the persistent stores backing auth are up
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongodb": mongoClient != nil,
			"redis":   redisClient != nil,
		}
		ready := deps["mongodb"]
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// auth routes need both the user store and a session store
	if userSvc != nil && sessionsSvc != nil {
		handlers.NewAuthHandler(cfg, userSvc, sessionsSvc).Register(r.Group("/"))
	} else {
		logger.Warnf("auth routes not registered: users=%v sessions=%v", userSvc != nil, sessionsSvc != nil)
	}

	emphandler.New(service.New(empRepo)).Register(r, verifier)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting employee directory service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
