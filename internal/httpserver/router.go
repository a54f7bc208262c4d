package httpserver

import (
	"context"
	"embed"
	"html/template"

	syncsvc "channelengine-sync/internal/service/sync"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SyncService runs catalog synchronization against ChannelEngine.
type SyncService interface {
	SyncAll(ctx context.Context) syncsvc.Result
	SyncOne(ctx context.Context, id int64) syncsvc.Result
}

// LoginService validates and persists ChannelEngine credentials.
type LoginService interface {
	Login(ctx context.Context, accountName, apiKey string) (bool, error)
}

// Deps carries the collaborators the routes need.
type Deps struct {
	Sync  SyncService
	Login LoginService
}

// buildRouter wires the admin pages, the sync API and the platform hook.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors.Default())

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	admin := router.Group("/admin")
	{
		admin.GET("/login", loginPageHandler())
		admin.POST("/login", loginSubmitHandler(deps.Login, logger))
		admin.GET("/sync", syncPageHandler())
		admin.POST("/sync/start", syncAllHandler(deps.Sync))
		admin.POST("/products/:id/sync", syncOneHandler(deps.Sync))
	}

	router.POST("/hooks/product-updated", productUpdatedHandler(deps.Sync, logger))

	return router, nil
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Info("request completed")
	}
}
