package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attendease/internal/attendance"
	"attendease/internal/clock"
	"attendease/internal/config"
	"attendease/internal/directory"
	"attendease/internal/handler"
	"attendease/internal/httpmiddleware"
	"attendease/internal/kv"
	"attendease/internal/queue"
	"attendease/internal/session"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable key-value storage.
	var (
		kvStore kv.Store
		redisKV *kv.Redis
	)
	switch cfg.StorageBackend {
	case "memory":
		kvStore = kv.NewMemory()
	case "sqlite":
		sq, err := kv.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("sqlite storage: %w", err)
		}
		defer sq.Close()
		kvStore = sq
	case "redis":
		redisKV = kv.NewRedis(cfg.RedisAddr)
		kvStore = redisKV
	case "postgres":
		pg, err := kv.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres storage: %w", err)
		}
		defer pg.Close()
		kvStore = pg
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	log.Printf("storage backend: %s", cfg.StorageBackend)

	// User directory: built-in demo roster unless a file is supplied.
	users := directory.SeedUsers()
	if cfg.DirectoryFile != "" {
		loaded, err := directory.LoadUsersFile(cfg.DirectoryFile)
		if err != nil {
			return fmt.Errorf("load directory: %w", err)
		}
		users = loaded
		log.Printf("directory loaded from %s (%d users)", cfg.DirectoryFile, len(users))
	}
	dir := directory.New(users, nil)

	sessions := session.NewManager(dir, kvStore, cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL)
	if err := sessions.Restore(ctx); err != nil {
		log.Printf("warning: session restore failed: %v", err)
	}

	// Snapshot persistence: queue-backed by default, direct writes when the
	// queue is disabled.
	var sink attendance.Sink
	switch cfg.QueueBackend {
	case "memory":
		q := queue.NewInMemory(64)
		if err := attendance.RunPersister(ctx, q, kvStore); err != nil {
			return fmt.Errorf("start persister: %w", err)
		}
		sink = attendance.QueueSink{Queue: q}
	case "redis":
		if redisKV == nil {
			redisKV = kv.NewRedis(cfg.RedisAddr)
		}
		q := queue.NewRedisQueue(redisKV.Client(), "attendease:snapshots")
		if err := attendance.RunPersister(ctx, q, kvStore); err != nil {
			return fmt.Errorf("start persister: %w", err)
		}
		sink = attendance.QueueSink{Queue: q}
	default:
		sink = attendance.KVSink{KV: kvStore}
	}

	clk := clock.System{}

	records, ok, err := attendance.LoadRecords(ctx, kvStore)
	if err != nil {
		log.Printf("warning: load records failed, reseeding: %v", err)
	}
	if !ok {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		records = attendance.GenerateSeed(dir.Staff(), clk.Now(), rng)
		log.Printf("no stored attendance, seeded %d records", len(records))
	}
	store := attendance.NewStore(records, clk, sink)

	h := handler.New(sessions, store, dir, clk)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		healthy := true
		if redisKV != nil {
			healthy = redisKV.Healthy(c.Request.Context())
		}
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "storage": cfg.StorageBackend, "healthy": healthy})
	})

	r.POST("/v1/auth/login", h.Login)

	authed := r.Group("/v1", session.Auth(cfg.JWTSigningKey, cfg.JWTIssuer))
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/auth/session", h.Session)

	staff := authed.Group("", session.RequireRole(directory.RoleStaff))
	staff.POST("/punch/in", h.PunchIn)
	staff.POST("/punch/out", h.PunchOut)
	staff.GET("/attendance/me", h.MyAttendance)

	admin := authed.Group("", session.RequireRole(directory.RoleAdmin))
	admin.POST("/attendance/mark", h.Mark)
	admin.GET("/attendance", h.ByDate)
	admin.GET("/employees", h.Employees)
	admin.GET("/employees/:id/attendance", h.EmployeeAttendance)
	admin.GET("/reports/summary", h.Summary)
	admin.GET("/reports/export", h.Export)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// Security headers middleware.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
