package routes

import (
	"time"

	"auction-backend/controllers"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs incoming requests with timing
func RequestLogger(c *gin.Context) {
	start := time.Now()

	c.Next()

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if userID := c.GetString(controllers.ContextUserID); userID != "" {
		fields["user_id"] = userID
	}
	utils.Info("HTTP Request", fields)
}
