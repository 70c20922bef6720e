package handlers

import (
	"net/http"
	"strings"

	"rentdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/finance?start=YYYY-MM-DD&end=YYYY-MM-DD
func GetFinanceReport(c *gin.Context) {
	f := services.FinanceReportFilter{
		StartDate: strings.TrimSpace(c.Query("start")),
		EndDate:   strings.TrimSpace(c.Query("end")),
	}
	report, err := reportsService().GetFinanceReport(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
