package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the JSON envelope returned by every API handler.
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: 0, Message: message, Data: data})
}

func Fail(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: 1, Message: message, Data: data})
}

// FailStatus reports a failure with an explicit HTTP status code.
func FailStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Code: 1, Message: message})
}
