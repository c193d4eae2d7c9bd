package handler

import (
	"github.com/fuelsight/fuelsight-api/internal/application/service"
	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/dto/response"
	"github.com/fuelsight/fuelsight-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles slip upload and receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Upload accepts a slip image and runs the extraction pipeline
func (h *ReceiptHandler) Upload(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	file, err := c.FormFile("slip")
	if err != nil {
		response.BadRequest(c, "A slip image is required in the 'slip' form field")
		return
	}

	receipt, err := h.receiptService.Upload(c.Request.Context(), *userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Slip processed", gin.H{"receipt": receipt})
}

// List returns a page of the owner's receipts, newest first
func (h *ReceiptHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	receipts, pg, err := h.receiptService.List(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved",
		pagination.NewPaginatedResult[entity.Receipt](receipts, pg))
}

// Get returns one receipt with its readings
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), *userID, receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", gin.H{"receipt": receipt})
}

// Delete removes a receipt and its stored image
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), *userID, receiptID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Reprocess re-runs the parser over a receipt's stored OCR text
func (h *ReceiptHandler) Reprocess(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.Reprocess(c.Request.Context(), *userID, receiptID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt reprocessed", gin.H{"receipt": receipt})
}
