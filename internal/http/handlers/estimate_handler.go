package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/types"
)

type EstimateService interface {
	Estimate(ctx context.Context, cmd estimate.Command) (estimate.EstimateResult, error)
}

// EstimateHandler prices ad hoc requests that are not (yet) attached to a
// case, e.g. phone inquiries, and exposes the rate catalog for the admin UI.
type EstimateHandler struct {
	estimates EstimateService
	catalog   estimate.Catalog
}

func NewEstimateHandler(svc EstimateService, catalog estimate.Catalog) *EstimateHandler {
	return &EstimateHandler{estimates: svc, catalog: catalog}
}

type estimateReq struct {
	Manifest        estimate.Manifest `json:"manifest"`
	DistanceKm      float64           `json:"distance_km"`
	WindowStart     string            `json:"window_start"`
	WindowEnd       string            `json:"window_end"`
	SelectedOptions []string          `json:"selected_options"`
}

func (h *EstimateHandler) Estimate(c *gin.Context) {
	var body estimateReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	start, err := types.ParseTimeOfDay(body.WindowStart)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := types.ParseTimeOfDay(body.WindowEnd)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.estimates.Estimate(c.Request.Context(), estimate.Command{
		Manifest:        body.Manifest,
		DistanceKm:      body.DistanceKm,
		WindowStart:     start,
		WindowEnd:       end,
		SelectedOptions: body.SelectedOptions,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Catalog returns every rate table in one response. Read-only; edits go
// through the seed tooling and database for now.
func (h *EstimateHandler) Catalog(c *gin.Context) {
	ctx := c.Request.Context()

	points, err := h.catalog.PointTable(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	boxTiers, err := h.catalog.BoxTiers(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	pricingTiers, err := h.catalog.PricingTiers(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	bands, err := h.catalog.DistanceBands(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	surcharges, err := h.catalog.TimeSurcharges(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	options, err := h.catalog.WorkOptions(ctx)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cargo_points":    points,
		"box_tiers":       boxTiers,
		"pricing_tiers":   pricingTiers,
		"distance_bands":  bands,
		"time_surcharges": surcharges,
		"work_options":    options,
	})
}
