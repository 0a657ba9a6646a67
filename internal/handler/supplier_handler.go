package handler

import (
	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierHandler(supplierRepo repository.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{supplierRepo: supplierRepo}
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&supplier); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.Field + "' failed on tag '" + first.Tag + "'",
		})
	}

	if err := h.supplierRepo.Create(&supplier); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.supplierRepo.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	productCount, err := h.supplierRepo.CountProducts(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": supplier, "product_count": productCount})
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	existing, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.APIBaseURL = req.APIBaseURL

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.Field + "' failed on tag '" + first.Tag + "'",
		})
	}

	if err := h.supplierRepo.Update(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": existing})
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if _, err := h.supplierRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	if err := h.supplierRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}
