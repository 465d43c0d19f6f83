package api

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response api response
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// render write response as json
func render(c *gin.Context, status int, response Response) {
	buffer, err := sonic.Marshal(response)
	if err != nil {
		zap.L().Error("marshal response failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Data(status, "application/json; charset=utf-8", buffer)
}
