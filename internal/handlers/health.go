package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cinebase/cinebase/pkg/response"
)

// Health returns a simple status payload useful for liveness checks.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

// Ready reports readiness by pinging the cache database.
func Ready(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			response.Error(c, nil)
			return
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(requestContext(c))
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success: false,
				Error:   &response.ErrorInfo{Code: "NOT_READY", Message: "database unavailable"},
			})
			return
		}

		response.Success(c, http.StatusOK, gin.H{"status": "ready"})
	}
}
