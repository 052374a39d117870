// API gateway: registers routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/ai"
	"hakobu/internal/http/handlers"
	"hakobu/internal/http/middleware"
	"hakobu/internal/modules/estimate"
)

type ServerDeps struct {
	Quotes    handlers.QuoteService
	Estimates handlers.EstimateService
	Catalog   estimate.Catalog
	Dispatch  handlers.DispatchService
	Fleet     handlers.FleetService
	Intake    ai.ManifestSuggester // nil disables the intake endpoint
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	quoteHandler := handlers.NewQuoteHandler(s.deps.Quotes)
	r.POST("/api/quotes", quoteHandler.Create)
	r.GET("/api/quotes", quoteHandler.List)
	r.GET("/api/quotes/:id", quoteHandler.Get)
	r.PUT("/api/quotes/:id/manifest", quoteHandler.Revise)
	r.POST("/api/quotes/:id/contract", quoteHandler.Contract)
	r.POST("/api/quotes/:id/cancel", quoteHandler.Cancel)

	estimateHandler := handlers.NewEstimateHandler(s.deps.Estimates, s.deps.Catalog)
	r.POST("/api/estimates", estimateHandler.Estimate)
	r.GET("/api/catalog", estimateHandler.Catalog)

	fleetHandler := handlers.NewFleetHandler(s.deps.Fleet)
	r.POST("/api/trucks", fleetHandler.Create)
	r.GET("/api/trucks", fleetHandler.List)
	r.GET("/api/trucks/:id", fleetHandler.Get)
	r.PUT("/api/trucks/:id/status", fleetHandler.SetStatus)

	dispatchHandler := handlers.NewDispatchHandler(s.deps.Dispatch)
	r.POST("/api/trucks/:id/assignments/validate", dispatchHandler.Validate)
	r.POST("/api/trucks/:id/assignments", dispatchHandler.Assign)
	r.GET("/api/trucks/:id/assignments", dispatchHandler.List)
	r.DELETE("/api/trucks/:id/assignments/:entryID", dispatchHandler.Unassign)
	r.POST("/api/assignments/confirm", dispatchHandler.Confirm)

	intakeHandler := handlers.NewIntakeHandler(s.deps.Intake)
	r.POST("/api/intake/suggest", intakeHandler.Suggest)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
