package handler

import (
	"crypto/subtle"
	"strings"
	"time"

	"go-inventory-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CronHandler exposes the scheduled maintenance entrypoint: a full supplier
// sync followed by a low-stock scan, guarded by a shared secret instead of a
// user JWT so external schedulers can call it.
type CronHandler struct {
	syncService  service.SyncService
	alertService service.AlertService
	secret       string
}

func NewCronHandler(syncService service.SyncService, alertService service.AlertService, secret string) *CronHandler {
	return &CronHandler{
		syncService:  syncService,
		alertService: alertService,
		secret:       secret,
	}
}

func (h *CronHandler) Run(c *fiber.Ctx) error {
	if h.secret == "" {
		return c.Status(503).JSON(fiber.Map{"error": "Cron endpoint not configured"})
	}

	auth := c.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	start := time.Now()

	syncResults, err := h.syncService.SyncAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	alertResults, err := h.alertService.CheckAndAlert()
	if err != nil {
		return respondError(c, err)
	}

	log.Info().
		Int("synced", len(syncResults)).
		Int("alerts", len(alertResults)).
		Dur("elapsed", time.Since(start)).
		Msg("cron run completed")

	return c.JSON(fiber.Map{
		"sync_results":  syncResults,
		"alert_results": alertResults,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
