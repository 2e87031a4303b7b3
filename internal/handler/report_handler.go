package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_report/internal/models"
	"github.com/GTDGit/gtd_report/internal/utils"
)

// ReportService is the report logic used by ReportHandler.
type ReportService interface {
	GetTopProducts(ctx context.Context) ([]models.Product, error)
	GetProductsWithSuppliers(ctx context.Context) ([]models.ProductWithSuppliers, error)
}

// ReportHandler serves the catalog report endpoints.
type ReportHandler struct {
	reportService ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetTopProducts returns the five most expensive products.
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	products, err := h.reportService.GetTopProducts(c.Request.Context())
	if err != nil {
		log.Error().
			Str("request_id", utils.RequestID(c)).
			Err(err).
			Msg("get top products failed")
		utils.ServerError(c)
		return
	}

	utils.Success(c, products)
}

// GetProductsWithSuppliers returns every product with its suppliers nested.
func (h *ReportHandler) GetProductsWithSuppliers(c *gin.Context) {
	products, err := h.reportService.GetProductsWithSuppliers(c.Request.Context())
	if err != nil {
		log.Error().
			Str("request_id", utils.RequestID(c)).
			Err(err).
			Msg("get products with suppliers failed")
		utils.ServerError(c)
		return
	}

	utils.Success(c, products)
}
