// Package respond is the single place where service errors become HTTP
// responses
package respond

import (
	"bitwise74/medflow-api/internal/observability"
	"bitwise74/medflow-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const VerifyTemplate = "verify.html"

// Error writes the response matching err and logs anything unexpected
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		ce *service.ConflictError
	)

	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ve.Error())
	case errors.As(err, &nf):
		fail(c, http.StatusNotFound, nf.Error())
	case errors.As(err, &ce):
		fail(c, http.StatusBadRequest, ce.Error())
	case errors.Is(err, service.ErrNotVerified):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrCooldown):
		fail(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrInvalidVerification):
		VerifyPage(c, false)
	default:
		zap.L().Error("Unhandled error", zap.Error(err), zap.String("requestID", requestID), zap.String("route", c.FullPath()))
		observability.CaptureErr(err, requestID)

		body := gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}

// BadRequest answers requests whose body couldn't be decoded
func BadRequest(c *gin.Context, err error) {
	zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	fail(c, http.StatusBadRequest, "Invalid request body")
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":     msg,
		"requestID": c.GetString("requestID"),
	})
}

// VerifyPage renders the page an admin lands on after following an
// approval link
func VerifyPage(c *gin.Context, ok bool) {
	status := http.StatusOK
	data := gin.H{
		"Title":   "Account approved",
		"Message": "The account was verified. The user can now log in.",
		"OK":      true,
	}

	if !ok {
		status = http.StatusBadRequest
		data = gin.H{
			"Title":   "Verification failed",
			"Message": "This verification link is invalid or has expired.",
			"OK":      false,
		}
	}

	c.HTML(status, VerifyTemplate, data)
	c.Abort()
}
