package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oakvale/server/internal/finance"
)

func (h *Handler) Mortgage(c *gin.Context) {
	var in finance.MortgageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.WithError(err).Debug("Invalid mortgage request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := finance.ComputeMortgage(in)
	if err != nil {
		h.respondError(c, err, "Failed to compute mortgage")
		return
	}
	c.JSON(http.StatusOK, result)
}

// MortgageSchedule returns the payment summary with the month-by-month
// amortization table
func (h *Handler) MortgageSchedule(c *gin.Context) {
	var in finance.MortgageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.WithError(err).Debug("Invalid mortgage request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	summary, err := finance.ComputeMortgage(in)
	if err != nil {
		h.respondError(c, err, "Failed to compute mortgage")
		return
	}
	schedule, err := finance.AmortizationSchedule(in)
	if err != nil {
		h.respondError(c, err, "Failed to compute amortization schedule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"schedule": schedule,
	})
}

func (h *Handler) Valuation(c *gin.Context) {
	var in finance.ValuationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.WithError(err).Debug("Invalid valuation request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.estimator.Estimate(in)
	if err != nil {
		h.respondError(c, err, "Failed to estimate value")
		return
	}
	c.JSON(http.StatusOK, result)
}
