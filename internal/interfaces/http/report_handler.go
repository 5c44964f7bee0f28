package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ReportHandler reportes agregados sobre pedidos.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// BestsellingProducts productos más pedidos.
// GET /api/reports/bestselling-products?limit=10
func (h *ReportHandler) BestsellingProducts(c *fiber.Ctx) error {
	out, err := h.uc.BestsellingProducts(c.UserContext(), GetCompanyID(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopCustomer cliente con más pedidos.
// GET /api/reports/top-customer
func (h *ReportHandler) TopCustomer(c *fiber.Ctx) error {
	out, err := h.uc.TopCustomer(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProductPerWarehouse producto más pedido por bodega.
// GET /api/reports/top-product-per-warehouse
func (h *ReportHandler) TopProductPerWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.TopProductPerWarehouse(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
