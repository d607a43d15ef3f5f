package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/store"
)

// RecordsHandler exposes CRUD endpoints over the five record collections.
// The store contract applies: numeric values pass through unvalidated and
// update/delete of an unknown id succeeds as a no-op.
type RecordsHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter for record CRUD.
func NewRecordsHandler(st *store.Store, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{store: st, logger: logger}
}

// ListArrivals returns all chick arrivals in insertion order.
func (h *RecordsHandler) ListArrivals(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListChickArrivals())
}

// CreateArrival records a new chick arrival.
func (h *RecordsHandler) CreateArrival(c *gin.Context) {
	var input models.ChickArrivalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid arrival payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.AddChickArrival(c.Request.Context(), input))
}

// UpdateArrival applies a partial update to a chick arrival.
func (h *RecordsHandler) UpdateArrival(c *gin.Context) {
	var patch models.ChickArrivalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid arrival patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.UpdateChickArrival(c.Request.Context(), c.Param("id"), patch)
	c.Status(http.StatusNoContent)
}

// DeleteArrival removes a chick arrival.
func (h *RecordsHandler) DeleteArrival(c *gin.Context) {
	h.store.DeleteChickArrival(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListMortalities returns all mortality records in insertion order.
func (h *RecordsHandler) ListMortalities(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListMortalities())
}

// CreateMortality records chicks lost.
func (h *RecordsHandler) CreateMortality(c *gin.Context) {
	var input models.MortalityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid mortality payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.AddMortality(c.Request.Context(), input))
}

// UpdateMortality applies a partial update to a mortality record.
func (h *RecordsHandler) UpdateMortality(c *gin.Context) {
	var patch models.MortalityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid mortality patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.UpdateMortality(c.Request.Context(), c.Param("id"), patch)
	c.Status(http.StatusNoContent)
}

// DeleteMortality removes a mortality record.
func (h *RecordsHandler) DeleteMortality(c *gin.Context) {
	h.store.DeleteMortality(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListFeedMedicines returns all feed/medicine purchases in insertion order.
func (h *RecordsHandler) ListFeedMedicines(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListFeedMedicines())
}

// CreateFeedMedicine records a feed or medicine purchase.
func (h *RecordsHandler) CreateFeedMedicine(c *gin.Context) {
	var input models.FeedMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid feed/medicine payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.AddFeedMedicine(c.Request.Context(), input))
}

// UpdateFeedMedicine applies a partial update to a purchase.
func (h *RecordsHandler) UpdateFeedMedicine(c *gin.Context) {
	var patch models.FeedMedicinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid feed/medicine patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.UpdateFeedMedicine(c.Request.Context(), c.Param("id"), patch)
	c.Status(http.StatusNoContent)
}

// DeleteFeedMedicine removes a purchase.
func (h *RecordsHandler) DeleteFeedMedicine(c *gin.Context) {
	h.store.DeleteFeedMedicine(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListSales returns all sales in insertion order.
func (h *RecordsHandler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListSales())
}

// CreateSale records a sale; the outstanding balance is derived server-side.
func (h *RecordsHandler) CreateSale(c *gin.Context) {
	var input models.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.AddSale(c.Request.Context(), input))
}

// UpdateSale applies a partial update to a sale.
func (h *RecordsHandler) UpdateSale(c *gin.Context) {
	var patch models.SalePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid sale patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.UpdateSale(c.Request.Context(), c.Param("id"), patch)
	c.Status(http.StatusNoContent)
}

// DeleteSale removes a sale.
func (h *RecordsHandler) DeleteSale(c *gin.Context) {
	h.store.DeleteSale(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ListExtraExpenses returns all extra expenses in insertion order.
func (h *RecordsHandler) ListExtraExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListExtraExpenses())
}

// CreateExtraExpense records an extra expense.
func (h *RecordsHandler) CreateExtraExpense(c *gin.Context) {
	var input models.ExtraExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid extra expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, h.store.AddExtraExpense(c.Request.Context(), input))
}

// UpdateExtraExpense applies a partial update to an extra expense.
func (h *RecordsHandler) UpdateExtraExpense(c *gin.Context) {
	var patch models.ExtraExpensePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid extra expense patch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.store.UpdateExtraExpense(c.Request.Context(), c.Param("id"), patch)
	c.Status(http.StatusNoContent)
}

// DeleteExtraExpense removes an extra expense.
func (h *RecordsHandler) DeleteExtraExpense(c *gin.Context) {
	h.store.DeleteExtraExpense(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}
