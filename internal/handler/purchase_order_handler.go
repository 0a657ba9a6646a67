package handler

import (
	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseOrderHandler struct {
	service service.PurchaseService
}

func NewPurchaseOrderHandler(s service.PurchaseService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: s}
}

func (h *PurchaseOrderHandler) CreateOrder(c *fiber.Ctx) error {
	var input service.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	input.CreatedBy = userID

	order, err := h.service.CreateOrder(input)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase order created", "data": order})
}

func (h *PurchaseOrderHandler) GetOrders(c *fiber.Ctx) error {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 20)

	orders, total, err := h.service.ListOrders(page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": orders,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *PurchaseOrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

type UpdateStatusRequest struct {
	Status model.PurchaseOrderStatus `json:"status"`
}

// UpdateStatus drives the PO state machine; only RECEIVED has stock side
// effects
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated", "data": order})
}

func (h *PurchaseOrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.DeleteOrder(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
