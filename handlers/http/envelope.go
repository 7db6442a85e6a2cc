package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire envelope every action resolves to. Action-level failures are
// delivered as status "error" with 200 so thin clients only need to look
// at the status field; transport-level failures use HTTP codes.
func respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}
