package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Build and runtime info
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /info [get]
func (h *Handler) info(c *gin.Context) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	c.JSON(http.StatusOK, gin.H{
		"hostname":       host,
		"version":        Version,
		"go_version":     runtime.Version(),
		"uptime_seconds": int64(time.Since(h.started) / time.Second),
	})
}

// @Summary      Persisted settings
// @Description  What a restart would load; may lag /status after a failed save.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Settings
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	s, err := h.services.GetSettings(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load settings", "settings_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
