package httpx

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed API call.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"order not found"`
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Success: false, Message: msg})
}

// RequestIDFrom returns the id set by RequestID, for log lines.
func RequestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ridKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
