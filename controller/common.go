package controller

import (
	"net/http"
	"strconv"

	"backend/middleware"
	"backend/model"
	"backend/service"

	"github.com/gin-gonic/gin"
)

// respond writes env with the HTTP status implied by its outcome. Partial
// responses stay 200; the envelope's errors list carries the detail.
func respond(c *gin.Context, env *model.Envelope) {
	c.JSON(statusFor(c, env), env)
}

func statusFor(c *gin.Context, env *model.Envelope) int {
	if env.Status != model.StatusError {
		return http.StatusOK
	}
	if len(env.Errors) == 0 {
		return http.StatusInternalServerError
	}
	switch env.Errors[0].Type {
	case model.ErrTypeValidation:
		return http.StatusBadRequest
	case model.ErrTypeNotFound:
		return http.StatusNotFound
	case model.ErrTypeRateLimit:
		if retry, ok := env.Metadata["retry_after_seconds"].(int); ok && retry > 0 {
			c.Header("Retry-After", strconv.Itoa(retry))
		}
		return http.StatusTooManyRequests
	case model.ErrTypeTimeout:
		return http.StatusGatewayTimeout
	case model.ErrTypeExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestOptions(c *gin.Context) model.RequestOptions {
	return model.RequestOptions{
		ClientKey: c.ClientIP(),
		RequestID: middleware.GetRequestID(c),
	}
}

// failValidation answers a request rejected before it reaches the aggregator.
func failValidation(c *gin.Context, err error) {
	env := service.NewEnvelope(middleware.GetRequestID(c)).Fail(err).Build()
	respond(c, env)
}

func queryBool(c *gin.Context, name string, fallback bool) bool {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
