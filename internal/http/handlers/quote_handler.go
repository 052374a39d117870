package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/modules/quote"
	"hakobu/internal/types"
)

type QuoteService interface {
	Create(ctx context.Context, cmd quote.CreateCommand) (quote.Quote, error)
	Revise(ctx context.Context, cmd quote.ReviseCommand) (quote.Quote, error)
	Contract(ctx context.Context, id types.ID) (quote.Quote, error)
	Cancel(ctx context.Context, id types.ID) (quote.Quote, error)
	Get(ctx context.Context, id types.ID) (quote.Quote, error)
	List(ctx context.Context) ([]quote.Quote, error)
}

type QuoteHandler struct {
	quotes QuoteService
}

func NewQuoteHandler(svc QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: svc}
}

type createQuoteReq struct {
	CustomerRef     string            `json:"customer_ref"`
	MoveDate        string            `json:"move_date"`
	WindowStart     string            `json:"window_start"`
	WindowEnd       string            `json:"window_end"`
	OriginAddress   string            `json:"origin_address"`
	DestAddress     string            `json:"dest_address"`
	DistanceKm      float64           `json:"distance_km"`
	Manifest        estimate.Manifest `json:"manifest"`
	SelectedOptions []string          `json:"selected_options"`
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var body createQuoteReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	date, err := types.ParseDate(body.MoveDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
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

	q, err := h.quotes.Create(c.Request.Context(), quote.CreateCommand{
		CustomerRef:     body.CustomerRef,
		MoveDate:        date,
		WindowStart:     start,
		WindowEnd:       end,
		OriginAddress:   body.OriginAddress,
		DestAddress:     body.DestAddress,
		DistanceKm:      body.DistanceKm,
		Manifest:        body.Manifest,
		SelectedOptions: body.SelectedOptions,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quoteResponse(q))
}

type reviseQuoteReq struct {
	Manifest        estimate.Manifest `json:"manifest"`
	SelectedOptions []string          `json:"selected_options"`
}

func (h *QuoteHandler) Revise(c *gin.Context) {
	var body reviseQuoteReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, err := h.quotes.Revise(c.Request.Context(), quote.ReviseCommand{
		QuoteID:         types.ID(c.Param("id")),
		Manifest:        body.Manifest,
		SelectedOptions: body.SelectedOptions,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse(q))
}

func (h *QuoteHandler) Contract(c *gin.Context) {
	q, err := h.quotes.Contract(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse(q))
}

func (h *QuoteHandler) Cancel(c *gin.Context) {
	q, err := h.quotes.Cancel(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse(q))
}

func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.quotes.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse(q))
}

func (h *QuoteHandler) List(c *gin.Context) {
	qs, err := h.quotes.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(qs))
	for _, q := range qs {
		out = append(out, quoteResponse(q))
	}
	c.JSON(http.StatusOK, gin.H{"quotes": out})
}

func quoteResponse(q quote.Quote) gin.H {
	return gin.H{
		"id":               q.ID,
		"customer_ref":     q.CustomerRef,
		"status":           q.Status,
		"move_date":        q.MoveDate,
		"window_start":     q.WindowStart,
		"window_end":       q.WindowEnd,
		"origin_address":   q.OriginAddress,
		"dest_address":     q.DestAddress,
		"distance_km":      q.DistanceKm,
		"manifest":         q.Manifest,
		"selected_options": q.SelectedOptions,
		"estimate":         q.Estimate,
		"created_at":       q.CreatedAt,
		"updated_at":       q.UpdatedAt,
	}
}
