package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rentdesk/internal/services"
	"rentdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

type paymentPayload struct {
	Amount      int64  `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date"` // optional, defaults to now
	Method      string `json:"method"`
	Reference   string `json:"reference"`
}

// POST /api/trips/:id/payments
func AddPayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req paymentPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	in := services.AddPaymentInput{
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Reference: strings.TrimSpace(req.Reference),
	}
	if s := strings.TrimSpace(req.PaymentDate); s != "" {
		date, err := utils.ParseDateTime(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid payment_date", err)
			return
		}
		in.PaymentDate = date
	}
	view, err := paymentService(c).AddPayment(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GET /api/trips/:id/payments
func GetPayments(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	payments, rec, err := paymentService(c).ListPayments(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "reconciliation": rec})
}

// DELETE /api/trips/:id/payments/:paymentId
func RemovePayment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	paymentID, err := strconv.ParseInt(strings.TrimSpace(c.Param("paymentId")), 10, 64)
	if err != nil || paymentID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid payment id", err)
		return
	}
	view, err := paymentService(c).RemovePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
