package api

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"modconsole.com/internal/config"
	"modconsole.com/internal/engine"
)

//go:embed views
var viewsFS embed.FS

// NewServer builds the console app with every route registered.
func NewServer(cfg *config.Config, eng *engine.Engine) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     cfg.Server.AppName,
		Views:       newViewEngine(),
		ViewsLayout: "layouts/main",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	NewRouter(app, cfg, eng).RegisterRoutes()
	return app
}

func newViewEngine() *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		log.Fatalf("Failed to open embedded views: %v", err)
	}
	tmpl := html.NewFileSystem(http.FS(views), ".html")
	tmpl.AddFunc("severityClass", severityClass)
	return tmpl
}

func severityClass(severity string) string {
	switch severity {
	case "success":
		return "notice notice-success"
	case "error":
		return "notice notice-error"
	default:
		return "notice"
	}
}
