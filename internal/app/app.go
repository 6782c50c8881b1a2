package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pixelplaque/pixelplaque"
	"github.com/pixelplaque/pixelplaque/internal/backend"
	"github.com/pixelplaque/pixelplaque/internal/backend/local"
	"github.com/pixelplaque/pixelplaque/internal/config"
	"github.com/pixelplaque/pixelplaque/internal/content"
	"github.com/pixelplaque/pixelplaque/internal/db"
	"github.com/pixelplaque/pixelplaque/internal/markdown"
	"github.com/pixelplaque/pixelplaque/internal/repository"
	"github.com/pixelplaque/pixelplaque/internal/service"
	"github.com/pixelplaque/pixelplaque/internal/session"
	"github.com/pixelplaque/pixelplaque/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Auth             backend.Auth
	SessionCodec     *session.SnapshotCodec
	EmailService     *service.EmailService
	PortfolioService *service.PortfolioService
	BlogService      *service.BlogService
	PageService      *service.PageService
	SitemapService   *service.SitemapService
	UploadService    *service.UploadService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	codeRepository := repository.NewCodeRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	recordRepository := repository.NewRecordRepository(database)
	uploadRepository := repository.NewUploadRepository(database)

	// Storage (optional)
	var fileStorage storage.Storage
	if cfg.UploadsEnabled() {
		s3Storage, err := storage.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %v", err)
		}
		fileStorage = s3Storage
	} else {
		slog.Info("image uploads disabled", "hint", "set S3_BUCKET to enable")
	}

	// Backend
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.AppURL,
		cfg.AppName,
		humanDuration(cfg.OTPExpiry),
		cfg.IsDevelopment(),
	)
	auth := local.NewAuth(userRepository, codeRepository, sessionRepository, emailService, local.AuthOptions{
		CodeExpiry:    cfg.OTPExpiry,
		SessionExpiry: cfg.SessionExpiry,
		AllowedEmails: cfg.AdminEmails,
		OpenSignup:    cfg.IsDevelopment(),
	})
	table := local.NewTable(recordRepository, sessionRepository)

	// Services
	parser := markdown.NewParser()
	portfolioService := service.NewPortfolioService(
		content.NewRepository(table, cfg.PortfolioCollection, content.PortfolioCodec{}),
	)
	blogService := service.NewBlogService(
		content.NewRepository(table, cfg.BlogCollection, content.BlogCodec{}),
		parser,
	)
	pageService := service.NewPageService(pixelplaque.ContentFS, "content/legal", parser)
	sitemapService := service.NewSitemapService(blogService, pageService, cfg.AppURL)
	uploadService := service.NewUploadService(uploadRepository, fileStorage)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Auth:             auth,
		SessionCodec:     session.NewSnapshotCodec(cfg.JWTSecret, cfg.SessionExpiry),
		EmailService:     emailService,
		PortfolioService: portfolioService,
		BlogService:      blogService,
		PageService:      pageService,
		SitemapService:   sitemapService,
		UploadService:    uploadService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// humanDuration renders an expiry for email copy, e.g. "10 minutes"
func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int(d/time.Hour), "hour")
	}
	return plural(int(d.Round(time.Minute)/time.Minute), "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
