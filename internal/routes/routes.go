package routes

import (
	"net/http"

	"github.com/pixelplaque/pixelplaque/assets"
	"github.com/pixelplaque/pixelplaque/internal/app"
	"github.com/pixelplaque/pixelplaque/internal/handler"
	"github.com/pixelplaque/pixelplaque/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.PortfolioService, app.EmailService)
	seo := handler.NewSEOHandler(app.SitemapService, app.Cfg.AppURL)
	portfolio := handler.NewPortfolioHandler(app.PortfolioService)
	blog := handler.NewBlogHandler(app.BlogService)
	legal := handler.NewLegalHandler(app.PageService)
	auth := handler.NewAuthHandler(app.Auth)
	dashboard := handler.NewDashboardHandler(app.PortfolioService, app.BlogService, app.UploadService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.AssetsFS))))

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Pages
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /about", home.AboutPage)
	mux.HandleFunc("GET /services", home.ServicesPage)
	mux.HandleFunc("GET /contact", home.ContactPage)
	mux.HandleFunc("POST /contact", home.SendContact)
	mux.HandleFunc("POST /theme/toggle", home.ToggleTheme)

	// Content
	mux.HandleFunc("GET /portfolio", portfolio.PortfolioPage)
	mux.HandleFunc("GET /blog", blog.ListPosts)
	mux.HandleFunc("GET /blog/{slug}", blog.ShowPost)
	mux.HandleFunc("GET /legal/{page}", legal.ShowPage)

	// ============================================================================
	// ADMIN LOGIN
	// ============================================================================

	mux.HandleFunc("GET /admin/login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /admin/login/email", middleware.RequireGuest(auth.SubmitEmail))
	mux.HandleFunc("POST /admin/login/code", middleware.RequireGuest(auth.SubmitCode))
	mux.HandleFunc("POST /admin/login/reset", middleware.RequireGuest(auth.ResetEmail))
	mux.HandleFunc("POST /admin/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/admin/*)
	// ============================================================================

	mux.HandleFunc("GET /admin/{$}", middleware.RequireAdmin(dashboard.DashboardPage))
	mux.HandleFunc("GET /admin/dashboard", middleware.RequireAdmin(dashboard.DashboardPage))

	// Portfolio
	mux.HandleFunc("GET /admin/portfolio/new", middleware.RequireAdmin(dashboard.NewPortfolioDialog))
	mux.HandleFunc("GET /admin/portfolio/{id}/edit", middleware.RequireAdmin(dashboard.EditPortfolioDialog))
	mux.HandleFunc("POST /admin/portfolio", middleware.RequireAdmin(dashboard.CreatePortfolioItem))
	mux.HandleFunc("PUT /admin/portfolio/{id}", middleware.RequireAdmin(dashboard.UpdatePortfolioItem))
	mux.HandleFunc("DELETE /admin/portfolio/{id}", middleware.RequireAdmin(dashboard.DeletePortfolioItem))

	// Blog
	mux.HandleFunc("GET /admin/blog/new", middleware.RequireAdmin(dashboard.NewPostDialog))
	mux.HandleFunc("GET /admin/blog/slug", middleware.RequireAdmin(dashboard.SlugPreview))
	mux.HandleFunc("GET /admin/blog/{id}/edit", middleware.RequireAdmin(dashboard.EditPostDialog))
	mux.HandleFunc("POST /admin/blog", middleware.RequireAdmin(dashboard.CreatePost))
	mux.HandleFunc("PUT /admin/blog/{id}", middleware.RequireAdmin(dashboard.UpdatePost))
	mux.HandleFunc("DELETE /admin/blog/{id}", middleware.RequireAdmin(dashboard.DeletePost))

	// Uploads
	mux.HandleFunc("POST /admin/uploads", middleware.RequireAdmin(dashboard.UploadImage))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders, // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.SessionMiddleware(app.SessionCodec, app.Cfg.IsProduction(), app.Cfg.SessionExpiry),
		middleware.WithURLPath,
	)

	return handler
}
