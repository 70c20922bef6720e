package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/invoice
func GetTripInvoice(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
