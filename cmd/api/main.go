package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/config"
	dbpkg "github.com/fidelize/loyalty-admin/internal/db"
	"github.com/fidelize/loyalty-admin/internal/middleware"
	"github.com/fidelize/loyalty-admin/internal/routes"
	"github.com/fidelize/loyalty-admin/internal/tokens"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Denylist de tokens: Redis quando configurado, memória caso contrário
	var denylist tokens.Denylist
	if cfg.RedisAddr != "" {
		redisDenylist := tokens.NewRedisDenylist(cfg.RedisAddr, cfg.RedisPassword)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisDenylist.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("failed to connect redis: %v", err)
		}
		cancel()

		denylist = redisDenylist
	} else {
		log.Println("REDIS_ADDR not set, using in-memory token denylist")
		denylist = tokens.NewMemoryDenylist()
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, cfg.AuditQueueSize)
	defer auditDispatcher.Close()

	if cfg.AuditArchiveBucket != "" {
		archiver := audit.NewArchiver(
			db,
			cfg.AuditArchiveRegion,
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			cfg.AuditArchiveBucket,
		)
		go archiver.Run(context.Background(), 24*time.Hour)
		log.Printf("audit archiver enabled (bucket %s)", cfg.AuditArchiveBucket)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, denylist, auditDispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
