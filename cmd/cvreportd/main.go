// Command cvreportd exposes report generation over HTTP: POST /report
// takes an analysis record and streams back the finished PDF. The analysis
// itself happens upstream; this service only composes documents.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/talentika/cvreport"
)

const version = "1.0.0"

type config struct {
	port      string
	fontDir   string
	logoPath  string
	outputDir string
}

func loadConfig() config {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config{
		port:      os.Getenv("PORT"),
		fontDir:   os.Getenv("FONT_DIR"),
		logoPath:  os.Getenv("LOGO_PATH"),
		outputDir: os.Getenv("OUTPUT_DIR"),
	}
	if cfg.port == "" {
		cfg.port = "8080"
	}
	if cfg.fontDir == "" {
		cfg.fontDir = "fonts"
	}
	if cfg.logoPath == "" {
		cfg.logoPath = "assets/logo.png"
	}
	if cfg.outputDir == "" {
		cfg.outputDir = os.TempDir()
	}
	return cfg
}

type reportRequest struct {
	Record        map[string]any `json:"record" binding:"required"`
	CandidateName string         `json:"candidateName"`
	TargetRole    string         `json:"targetRole"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := loadConfig()
	if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
		logger.Error("creating output directory", "dir", cfg.outputDir, "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "cvreportd",
			"version": version,
		})
	})

	router.POST("/report", func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		// Each request composes into its own artifact; reports for
		// different users may run concurrently without shared state.
		path := filepath.Join(cfg.outputDir, uuid.NewString()+".pdf")
		pages, warnings, err := cvreport.FromRecord(req.Record).
			Candidate(req.CandidateName).
			Role(req.TargetRole).
			FontDir(cfg.fontDir).
			Logo(cfg.logoPath).
			Logger(logger).
			ToFile(path)
		if err != nil {
			logger.Error("report generation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		for _, w := range warnings {
			logger.Warn("report degraded", "code", w.Code, "detail", w.Message, "artifact", path)
		}
		logger.Info("report generated", "artifact", path, "pages", pages)

		c.Header("X-Page-Count", fmt.Sprint(pages))
		c.FileAttachment(path, "informe-cv.pdf")
	})

	logger.Info("listening", "port", cfg.port)
	if err := router.Run(":" + cfg.port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
