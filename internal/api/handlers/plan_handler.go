package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anvaya/replen/internal/domain"
	"github.com/anvaya/replen/internal/ingest"
	"github.com/anvaya/replen/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PlanHandler struct {
	service *service.PlanService
}

func NewPlanHandler(service *service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) parseFilter(c *gin.Context) domain.PlanFilter {
	filter := domain.PlanFilter{}

	if ch := strings.TrimSpace(c.Query("channel")); ch != "" {
		filter.Channel = ch
	}
	if seller := strings.TrimSpace(c.Query("seller")); seller == "true" || seller == "1" {
		filter.SellerOnly = true
	}

	return filter
}

// GetRows serves the allocated plan rows, filterable by channel and seller
// flag.
func (h *PlanHandler) GetRows(c *gin.Context) {
	rows, err := h.service.Rows(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	snap, _ := h.service.Current()
	c.JSON(http.StatusOK, gin.H{
		"run_id":    snap.RunID,
		"loaded_at": snap.LoadedAt,
		"count":     len(rows),
		"rows":      rows,
	})
}

// Refresh re-ingests all four sources and recomputes the plan.
func (h *PlanHandler) Refresh(c *gin.Context) {
	snap, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":    snap.RunID,
		"loaded_at": snap.LoadedAt,
		"rows":      len(snap.Rows),
	})
}

// GetWarehouseSummary serves per-warehouse totals with the grand-total row.
func (h *PlanHandler) GetWarehouseSummary(c *gin.Context) {
	summary, err := h.service.WarehouseSummary(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTopItems serves the top-N rankings by SKU and by style.
func (h *PlanHandler) GetTopItems(c *gin.Context) {
	bySKU, byStyle, err := h.service.TopItems(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_sku":   bySKU,
		"by_style": byStyle,
	})
}

func (h *PlanHandler) renderError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("plan request failed")

	status := http.StatusInternalServerError

	var schemaErr *ingest.SchemaError
	var transportErr *ingest.TransportError
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		status = http.StatusConflict
	case errors.Is(err, ingest.ErrNoData):
		status = http.StatusBadGateway
	case errors.As(err, &schemaErr), errors.As(err, &transportErr):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
