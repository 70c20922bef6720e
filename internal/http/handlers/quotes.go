package handlers

import (
	"net/http"

	"rentdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/trips/quote
func QuoteTrip(c *gin.Context) {
	var req services.QuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	result, err := quoteService(c).Quote(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
