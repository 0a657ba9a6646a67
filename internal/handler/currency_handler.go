package handler

import (
	"strconv"

	"go-inventory-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CurrencyHandler struct {
	service service.CurrencyService
}

func NewCurrencyHandler(s service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{service: s}
}

func (h *CurrencyHandler) GetRates(c *fiber.Ctx) error {
	base := c.Query("base", "USD")

	rates, err := h.service.GetRates(c.Context(), base)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rates)
}

func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	from := c.Query("from", "USD")
	to := c.Query("to", "EUR")

	amount := 1.0
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid amount"})
		}
		amount = parsed
	}

	conversion, err := h.service.Convert(c.Context(), amount, from, to)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"from":             from,
		"to":               to,
		"amount":           amount,
		"converted_amount": conversion.ConvertedAmount,
		"rate":             conversion.Rate,
	})
}
