package handler

import (
	"go-inventory-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

type SyncRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
}

// Sync runs a supplier sync. With a product_id in the body it syncs that one
// product; without, it syncs every sync-eligible product.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	var req SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}

	if req.ProductID != nil {
		result, err := h.service.SyncProduct(c.Context(), *req.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"results": []service.SyncResult{*result}})
	}

	results, err := h.service.SyncAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}
