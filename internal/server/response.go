package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/orgresolve/internal/model"
)

// Response is the envelope of every API answer
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Kind      string      `json:"kind,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success:   true,
		Data:      data,
		RequestID: c.GetString(requestIDKey),
	})
}

func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind, _ := model.KindOf(err)
	switch kind {
	case model.KindInvalidInput, model.KindInputTooShort:
		status = http.StatusBadRequest
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindQueueFull:
		status = http.StatusServiceUnavailable
	case model.KindExternalUnavailable:
		status = http.StatusBadGateway
	}
	c.AbortWithStatusJSON(status, Response{
		Success:   false,
		Error:     err.Error(),
		Kind:      string(kind),
		RequestID: c.GetString(requestIDKey),
	})
}

func badRequest(c *gin.Context, msg string) {
	fail(c, model.NewError(model.KindInvalidInput, c.FullPath(), errors.New(msg)))
}
