package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type TransactionRequest struct {
	ItemID       uint     `json:"item_id" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=buy sell"`
	Quantity     int      `json:"quantity" binding:"required,gt=0"`
	PricePerUnit *float64 `json:"price_per_unit" binding:"required,gte=0"`
	BuyerName    *string  `json:"buyer_name"`
}

type TransactionResponse struct {
	ID           uint      `json:"id"`
	ItemID       uint      `json:"item_id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
	BuyerName    *string   `json:"buyer_name"`
	Date         time.Time `json:"date"`
}

func newTransactionResponse(transaction *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           transaction.ID,
		ItemID:       transaction.ItemID,
		Type:         transaction.Type,
		Quantity:     transaction.Quantity,
		PricePerUnit: transaction.PricePerUnit,
		TotalPrice:   transaction.TotalPrice,
		BuyerName:    transaction.BuyerName,
		Date:         transaction.Date,
	}
}

// CreateTransaction godoc
// @Summary Record transaction
// @Description Record a buy or sell and apply it to the item's quantity
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	transaction, err := h.transactionService.RecordTransaction(c.Request.Context(), services.NewTransaction{
		ItemID:       req.ItemID,
		Type:         req.Type,
		Quantity:     req.Quantity,
		PricePerUnit: *req.PricePerUnit,
		BuyerName:    req.BuyerName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// ListTransactions godoc
// @Summary List transactions
// @Description Newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} TransactionResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(transactions, newTransactionResponse))
}

// GetTransaction godoc
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// ItemTransactions godoc
// @Summary Transactions of an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {array} TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{id}/transactions [get]
func (h *TransactionHandler) ItemTransactions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	transactions, err := h.transactionService.ItemTransactions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapSlice(transactions, newTransactionResponse))
}
