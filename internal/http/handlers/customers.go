package handlers

import (
	"net/http"
	"strings"

	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"

	"github.com/gin-gonic/gin"
)

type customerPayload struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	NIC     string `json:"nic"`
}

func (p customerPayload) model() models.Customer {
	return models.Customer{
		Name:    strings.TrimSpace(p.Name),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   strings.TrimSpace(p.Email),
		Address: strings.TrimSpace(p.Address),
		NIC:     strings.TrimSpace(p.NIC),
	}
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var req customerPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.CustomerRepository{}
	id, err := repo.Create(req.model())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cust, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

// GET /api/customers
func GetCustomers(c *gin.Context) {
	repo := repositories.CustomerRepository{}
	customers, err := repo.List(c.Query("q"), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GET /api/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	cust, err := repositories.CustomerRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cust)
}

// PUT /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req customerPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	cust := req.model()
	cust.ID = id
	repo := repositories.CustomerRepository{}
	if err := repo.Update(cust); err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.CustomerRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
