package controllers

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

const serviceName = "Auction Service"

// HealthCheck reports whether the database answers a ping.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, dbStatus := http.StatusOK, "connected"
	if ctrl.Ping != nil {
		if err := ctrl.Ping(ctx); err != nil {
			status, dbStatus = http.StatusServiceUnavailable, "disconnected"
			utils.Warn("HealthCheck: database ping failed", map[string]any{"error": err.Error()})
		}
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// GetStats handles GET /stats
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := ctrl.requestContext(c)
	defer cancel()

	stats, err := ctrl.Auctions.Stats(ctx)
	if err != nil {
		respondError(c, "GetStats", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, stats, "stats retrieved successfully")
}

// GetVersion handles GET /version
func (ctrl *Controller) GetVersion(c *gin.Context) {
	version := ctrl.Version
	if version == "" {
		version = "Unknown"
	}

	c.JSON(http.StatusOK, gin.H{
		"service":           serviceName,
		"version":           version,
		"hosted-at-address": hostAddress(),
	})
}

func hostAddress() string {
	host, err := os.Hostname()
	if err != nil {
		utils.Error("failed to resolve host name", map[string]any{"error": err.Error()})
		return "Could not resolve IP-address"
	}
	ips, err := net.LookupIP(host)
	if err != nil || len(ips) == 0 {
		return "Could not resolve IP-address"
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ips[0].String()
}
