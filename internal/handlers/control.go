package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"icecream_controller/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"

	errMissingTarget  = "missing target_temp"
	errMalformedValue = "malformed "
	errStartFailed    = "failed to start compressor"
	errStopFailed     = "failed to stop compressor"
	errSetTarget      = "failed to set target"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// formValue reads a form field, falling back to the query string.
func formValue(c *gin.Context, key string) (string, bool) {
	if v, ok := c.GetPostForm(key); ok {
		return strings.TrimSpace(v), true
	}
	if v, ok := c.GetQuery(key); ok {
		return strings.TrimSpace(v), true
	}
	return "", false
}

// parseFormBool accepts the values HTML checkboxes and scripts send.
func parseFormBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "false", "0", "off", "no":
		return false, nil
	case "true", "1", "on", "yes":
		return true, nil
	}
	return false, errors.New("not a boolean")
}

// @Summary      Controller status
// @Description  Contract change: temp is null (not a number) and sensor_fault true when the sensor reading is rejected; clients must null-check temp before formatting it. time_to_target is -1 when no forecast is possible.
// @Tags         control
// @Produce      json
// @Success      200  {object}  models.Status
// @Router       /status [get]
func (h *Handler) readStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ReadStatus(c.Request.Context()))
}

// @Summary      Temperature history
// @Description  Buffered readings oldest first; time is milliseconds since controller boot.
// @Tags         control
// @Produce      json
// @Success      200  {object}  models.History
// @Router       /temp-history [get]
func (h *Handler) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.GetHistory(c.Request.Context()))
}

// @Summary      Set target temperature
// @Tags         control
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        target_temp  formData  number  true  "Target in °C"  example(-5.5)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /set-target [post]
// @Router       /api/v1/control/set-target [post]
func (h *Handler) setTarget(c *gin.Context) {
	raw, ok := formValue(c, "target_temp")
	if !ok || raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingTarget})
		return
	}
	target, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedValue + "target_temp"})
		return
	}
	if err := h.services.SetTarget(c.Request.Context(), target); err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSetTarget, "set_target_failed", err, "target_temp", target)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "target_temp": target})
}

// @Summary      Start compressor
// @Description  Omitted fields keep the saved timer settings. Starting while running re-arms the timer from now.
// @Tags         control
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        use_timer      formData  boolean  false  "Arm the auto-stop timer; omitted keeps the saved choice"
// @Param        timer_minutes  formData  integer  false  "Timer duration in minutes; omitted keeps the saved duration"  minimum(0)  maximum(1440)
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /start [post]
// @Router       /api/v1/control/start [post]
func (h *Handler) startCompressor(c *gin.Context) {
	var p service.StartParams

	if raw, ok := formValue(c, "use_timer"); ok {
		useTimer, err := parseFormBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedValue + "use_timer"})
			return
		}
		p.UseTimer = &useTimer
	}

	if raw, ok := formValue(c, "timer_minutes"); ok && raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMalformedValue + "timer_minutes"})
			return
		}
		minutes := uint(v)
		p.TimerMinutes = &minutes
	}

	if err := h.services.Start(c.Request.Context(), p); err != nil {
		if errors.Is(err, service.ErrInvalidTimer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errStartFailed, "compressor_start_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStarted})
}

// @Summary      Stop compressor
// @Tags         control
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /stop [post]
// @Router       /api/v1/control/stop [post]
func (h *Handler) stopCompressor(c *gin.Context) {
	if err := h.services.Stop(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStopFailed, "compressor_stop_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStopped})
}
