package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mubina-Mulla/Pigmi/internal/apperrors"
	portssvc "github.com/Mubina-Mulla/Pigmi/internal/core/ports/services"
	"github.com/Mubina-Mulla/Pigmi/internal/dto"
	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service dependency.
type CustomerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs portssvc.CustomerSvcFacade) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// RegisterCustomerRoutes registers customer and interest routes on the
// authenticated group.
func RegisterCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := NewCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:accountNo", h.GetCustomer)
		customers.PUT("/:accountNo", h.UpdateCustomer)
		customers.DELETE("/:accountNo", h.DeleteCustomer)
		customers.POST("/:accountNo/transactions", h.RecordTransaction)
		customers.POST("/:accountNo/interest", h.ApplyInterest)
	}

	// Bulk interest lives outside /customers so it does not collide with
	// the :accountNo wildcard.
	rg.POST("/interest/apply-all", h.ApplyInterestToAll)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Description Creates a savings account with a generated account number and an optional opening deposit.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			// Unknown agent reference.
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create customer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create customer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(*customer))
}

// ListCustomers godoc
// @Summary List customers
// @Description Lists customers, optionally filtered by collection agent.
// @Tags customers
// @Produce json
// @Param agent query string false "Filter by agent name"
// @Success 200 {array} dto.CustomerResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Query("agent"))
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

// GetCustomer godoc
// @Summary Get a customer with ledger detail
// @Description Returns the customer, its transaction history, a ledger summary and the projected interest.
// @Tags customers
// @Produce json
// @Param accountNo path string true "Account Number"
// @Success 200 {object} dto.CustomerDetail
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{accountNo} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	detail, err := h.customerService.GetCustomerDetail(c.Request.Context(), accountNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to get customer", slog.String("account_no", accountNo), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get customer"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateCustomer godoc
// @Summary Update customer details
// @Description Updates editable customer fields. The account number is immutable.
// @Tags customers
// @Accept json
// @Produce json
// @Param accountNo path string true "Account Number"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{accountNo} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), accountNo, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update customer", slog.String("account_no", accountNo), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(*customer))
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Moves the customer and its transactions to the recycle bin.
// @Tags customers
// @Param accountNo path string true "Account Number"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{accountNo} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), accountNo, deleterUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to delete customer", slog.String("account_no", accountNo), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete customer"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordTransaction godoc
// @Summary Record a deposit or withdrawal
// @Description Appends a transaction to the account ledger and updates the running totals.
// @Tags customers
// @Accept json
// @Produce json
// @Param accountNo path string true "Account Number"
// @Param transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{accountNo}/transactions [post]
func (h *CustomerHandler) RecordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	addedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	txn, err := h.customerService.RecordTransaction(c.Request.Context(), accountNo, req, addedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to record transaction", slog.String("account_no", accountNo), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

// ApplyInterest godoc
// @Summary Apply interest to one account
// @Description Credits the accrued interest to the account. Fails with 409 if interest was already applied.
// @Tags interest
// @Produce json
// @Param accountNo path string true "Account Number"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{accountNo}/interest [post]
func (h *CustomerHandler) ApplyInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountNo := c.Param("accountNo")

	appliedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	customer, err := h.customerService.ApplyInterest(c.Request.Context(), accountNo, appliedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to apply interest", slog.String("account_no", accountNo), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply interest"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(*customer))
}

// ApplyInterestToAll godoc
// @Summary Apply interest to all eligible accounts
// @Description Runs the interest credit over every account that has not had interest applied yet.
// @Tags interest
// @Produce json
// @Success 200 {object} dto.ApplyInterestSummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /interest/apply-all [post]
func (h *CustomerHandler) ApplyInterestToAll(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	appliedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in token"})
		return
	}

	summary, err := h.customerService.ApplyInterestToAll(c.Request.Context(), appliedBy)
	if err != nil {
		logger.Error("Bulk interest run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply interest"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
