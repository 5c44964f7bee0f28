package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
)

// OrderHandler maneja pedidos: creación transaccional (pedido + líneas + factura) y CRUD de cabecera.
type OrderHandler struct {
	create *ordering.CreateOrderUseCase
	orders *ordering.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create *ordering.CreateOrderUseCase, orders *ordering.OrderUseCase) *OrderHandler {
	return &OrderHandler{create: create, orders: orders}
}

// Create crea el pedido con sus líneas y su factura en una sola transacción.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	cmd := ordering.NewCommand(GetCompanyID(c), GetUserID(c), in)
	out, err := h.create.CreateOrderWithItems(c.UserContext(), cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ordering.ToOrderResponse(out.Order, out.Items, out.Invoice))
}

// List lista pedidos de la empresa con total.
// GET /api/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.orders.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve el pedido con sus líneas y factura.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Items lista las líneas del pedido.
// GET /api/orders/:id/items
func (h *OrderHandler) Items(c *fiber.Ctx) error {
	out, err := h.orders.Items(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza la cabecera del pedido.
// PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.orders.Update(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SoftDelete elimina (soft) el pedido.
// DELETE /api/orders/:id
func (h *OrderHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.orders.SoftDelete(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete borra físicamente el pedido (solo OWNER). Con factura asociada responde 409.
// DELETE /api/orders/:id/hard
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
