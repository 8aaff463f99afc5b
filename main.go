package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"paper-rank/config"
	"paper-rank/models"
	"paper-rank/providers/crossref"
	"paper-rank/services"
	"paper-rank/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	newPapersCounter   prometheus.Counter
	rankingMissCounter prometheus.Counter
	importedRowsGauge  prometheus.Gauge
)

func init() {
	newPapersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "new_papers_added_total",
			Help: "Total number of new papers added to the database.",
		},
	)
	rankingMissCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ranking_misses_total",
			Help: "Total number of added papers without a resolved JCR ranking row.",
		},
	)
	importedRowsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jcr_ranking_rows",
			Help: "Number of JCR ranking rows loaded by the last import.",
		},
	)
	prometheus.MustRegister(newPapersCounter, rankingMissCounter, importedRowsGauge)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to database.")

	logging.Info("Running database auto-migration...")
	db.AutoMigrate(&models.Paper{}, &models.JCRRanking{})

	// Setup Services
	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	crossrefFetcher := crossref.NewFetcher(cfg, logging)
	rankingService := services.NewRankingService(db, logging, cfg.RankingFuzzyMatch)
	paperStore := storage.NewPaperStore(db)
	paperService := services.NewPaperService(crossrefFetcher, rankingService, paperStore, logging)
	importService := services.NewRankingImportService(cfg, db, s3Client, logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPaperRoutes(router, paperService, logging)
	setupRankingRoutes(router, rankingService, importService, logging)

	// Setup Cron: nächtlicher Refresh der Ranking-Tabelle aus S3
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled rankings import...")
		count, err := importService.ImportFromS3(context.Background())
		if err != nil {
			logging.Error("Scheduled rankings import failed", zap.Error(err))
		} else {
			logging.Info("Scheduled rankings import completed", zap.Int("rows", count))
			importedRowsGauge.Set(float64(count))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupPaperRoutes(router *gin.Engine, papers *services.PaperService, log *zap.Logger) {
	rg := router.Group("/papers")

	// GET - Alle gespeicherten Papers, neueste zuerst
	rg.GET("/", func(c *gin.Context) {
		list, err := papers.List(c.Request.Context())
		if err != nil {
			log.Error("Database query for all papers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	// POST - Neues Paper per DOI registrieren (kompletter Pipeline-Durchlauf)
	rg.POST("/", func(c *gin.Context) {
		var req struct {
			DOI string `json:"doi" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. 'doi' field is required."})
			return
		}

		paper, err := papers.AddPaper(c.Request.Context(), req.DOI)
		if err != nil {
			switch {
			case errors.Is(err, crossref.ErrWorkNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "DOI not found"})
			case errors.Is(err, services.ErrFetchFailed):
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch paper metadata"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save paper"})
			}
			return
		}

		newPapersCounter.Inc()
		if paper.ImpactFactor == services.NotAvailable {
			rankingMissCounter.Inc()
		}
		c.JSON(http.StatusCreated, paper)
	})

	// DELETE - Paper über ID entfernen
	rg.DELETE("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		if err := papers.Delete(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, services.ErrPaperNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
				return
			}
			log.Error("Failed to delete paper", zap.Uint64("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	})
}

func setupRankingRoutes(router *gin.Engine, rankings *services.RankingService, importer *services.RankingImportService, log *zap.Logger) {
	rg := router.Group("/rankings")

	// GET - Alle Ranking-Zeilen zu einer ISSN (Punkt-Lookup, für Diagnose)
	rg.GET("/:issn", func(c *gin.Context) {
		rows := rankings.Lookup(c.Request.Context(), []string{c.Param("issn")})
		if rows == nil {
			rows = []models.JCRRanking{}
		}
		c.JSON(http.StatusOK, rows)
	})

	// POST - Ranking-Tabelle aus dem S3-CSV neu laden
	rg.POST("/import", func(c *gin.Context) {
		count, err := importer.ImportFromS3(c.Request.Context())
		if err != nil {
			log.Error("Rankings import failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import rankings"})
			return
		}
		importedRowsGauge.Set(float64(count))
		c.JSON(http.StatusOK, gin.H{"message": "rankings imported", "rows": count})
	})
}
