package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"memorywall/cmd/middleware"
	"memorywall/internal/metrics"
	"memorywall/internal/service"
)

type Routers struct {
	Service    service.Service
	Metrics    *metrics.Metrics
	AdminToken string
	Mode       string
}

func NewRouters(r *Routers) *ginext.Engine {
	mode := r.Mode
	if mode == "" {
		mode = "release"
	}
	app := ginext.New(mode)

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.Metrics(r.Metrics))
	app.Use(cors.Default())

	metricsHandler := promhttp.Handler()
	app.GET("/metrics", func(c *ginext.Context) {
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})
	app.GET("/healthz", func(c *ginext.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Guests reach an event through its slug only.
	public := app.Group("/v1/e")
	public.GET("/:slug", r.Service.GetPublicEvent)
	public.POST("/:slug/submissions", r.Service.CreateSubmission)
	public.GET("/:slug/stream", r.Service.Stream)

	admin := app.Group("/v1")
	admin.Use(middleware.AdminAuth(r.AdminToken))

	admin.POST("/events", r.Service.CreateEvent)
	admin.GET("/events", r.Service.ListEvents)
	admin.GET("/events/:id", r.Service.GetEvent)
	admin.PATCH("/events/:id", r.Service.UpdateEvent)
	admin.DELETE("/events/:id", r.Service.DeleteEvent)

	admin.GET("/events/:id/settings", r.Service.GetSettings)
	admin.PATCH("/events/:id/settings", r.Service.UpdateSettings)
	admin.GET("/events/:id/submissions", r.Service.ListSubmissions)

	admin.PATCH("/submissions/:id/approval", r.Service.SetApproval)
	admin.DELETE("/submissions/:id", r.Service.DeleteSubmission)

	return app
}
