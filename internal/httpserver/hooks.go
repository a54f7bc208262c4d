package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type productUpdatedEvent struct {
	ID int64 `json:"id"`
}

// productUpdatedHandler is the storefront's product-updated hook. It has no
// caller to report failures to, so it syncs once, logs the outcome, and
// always acknowledges with 202. No retry queue.
func productUpdatedHandler(svc SyncService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event productUpdatedEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			logger.WithError(err).Warn("hook: unreadable product-updated event")
			c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
			return
		}

		result := svc.SyncOne(c.Request.Context(), event.ID)
		if !result.Success {
			logger.WithFields(logrus.Fields{
				"product_id": event.ID,
				"error":      result.Message,
			}).Error("hook: product sync failed")
		} else {
			logger.WithField("product_id", event.ID).Info("hook: product synced")
		}

		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	}
}
