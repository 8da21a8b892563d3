// server/internal/api/handlers/dashboard_handler.go
package handlers

import (
	"math"
	"net/http"
	"time"

	"gesla-logistics-api-server/internal/loads"
	"gesla-logistics-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Service *loads.Service
}

// Display rounding happens here and only here: currency to two decimals,
// percentages to the nearest integer. The engine accumulates unrounded.

type summaryResponse struct {
	TotalLoads    int                       `json:"totalLoads"`
	ByStatus      map[models.LoadStatus]int `json:"byStatus"`
	Revenue       float64                   `json:"revenue"`
	Cost          float64                   `json:"cost"`
	Profit        float64                   `json:"profit"`
	MarginPercent int                       `json:"marginPercent"`
	GoodMargin    bool                      `json:"goodMargin"`
	SLAPercent    int                       `json:"slaPercent"`
	PendingFiscal int                       `json:"pendingFiscal"`
}

type groupResponse struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	SLAPercent int     `json:"slaPercent"`
}

// GetSummary returns the dashboard headline block.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	active, err := h.Service.ListActive(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query loads"})
		return
	}

	s := loads.Summarize(active, time.Now())
	c.JSON(http.StatusOK, summaryResponse{
		TotalLoads:    s.TotalLoads,
		ByStatus:      s.ByStatus,
		Revenue:       round2(s.Revenue),
		Cost:          round2(s.Cost),
		Profit:        round2(s.Profit),
		MarginPercent: roundPercent(s.MarginPercent),
		GoodMargin:    s.MarginPercent > loads.GoodMarginThreshold,
		SLAPercent:    roundPercent(s.SLAPercent),
		PendingFiscal: s.PendingFiscal,
	})
}

// GetTopCarriers returns the top 5 carriers by total cost.
func (h *DashboardHandler) GetTopCarriers(c *gin.Context) {
	h.aggregate(c, func(all []models.Load, now time.Time) []loads.GroupTotals {
		return loads.TopByCost(loads.Aggregate(all, now, loads.ByCarrier), 5)
	})
}

// GetCarrierTotals returns every carrier bucket, for the carrier screen.
func (h *DashboardHandler) GetCarrierTotals(c *gin.Context) {
	h.aggregate(c, func(all []models.Load, now time.Time) []loads.GroupTotals {
		return loads.Aggregate(all, now, loads.ByCarrier)
	})
}

// GetMonthlyTotals buckets loads by issue month.
func (h *DashboardHandler) GetMonthlyTotals(c *gin.Context) {
	h.aggregate(c, func(all []models.Load, now time.Time) []loads.GroupTotals {
		return loads.Aggregate(all, now, loads.ByMonth)
	})
}

// GetShippingTypeTotals splits loads into CIF vs FOB buckets.
func (h *DashboardHandler) GetShippingTypeTotals(c *gin.Context) {
	h.aggregate(c, func(all []models.Load, now time.Time) []loads.GroupTotals {
		return loads.Aggregate(all, now, loads.ByShippingType)
	})
}

// GetClientTotals buckets loads by client id, for the client screen.
func (h *DashboardHandler) GetClientTotals(c *gin.Context) {
	h.aggregate(c, func(all []models.Load, now time.Time) []loads.GroupTotals {
		return loads.Aggregate(all, now, loads.ByClientID)
	})
}

func (h *DashboardHandler) aggregate(c *gin.Context, fn func([]models.Load, time.Time) []loads.GroupTotals) {
	active, err := h.Service.ListActive(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query loads"})
		return
	}

	groups := fn(active, time.Now())
	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, groupResponse{
			Key:        g.Key,
			Count:      g.Count,
			Revenue:    round2(g.Revenue),
			Cost:       round2(g.Cost),
			Profit:     round2(g.Profit),
			SLAPercent: roundPercent(g.SLAPercent),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
