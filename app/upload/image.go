// Package upload reads optional image uploads out of multipart requests
package upload

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/service"
	"bitwise74/medflow-api/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IsMultipart reports whether the request carries form data
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// Image returns the validated "image" field of a multipart request, or nil
// when there is none. When ok is false a response was already written.
// The returned close func must always be called.
func Image(c *gin.Context, cfg *config.Config) (img *service.Upload, closeFn func(), ok bool) {
	closeFn = func() {}

	if !IsMultipart(c) {
		return nil, closeFn, true
	}

	requestID := c.GetString("requestID")

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, closeFn, true
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Failed to read uploaded image",
			"requestID": requestID,
		})

		zap.L().Debug("Can't read form file", zap.Error(err), zap.String("requestID", requestID))
		return nil, closeFn, false
	}

	status, v, err := validators.ImageValidator(fh, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	if err != nil {
		if status == http.StatusInternalServerError {
			zap.L().Error("Failed to validate image", zap.Error(err), zap.String("requestID", requestID))
			c.AbortWithStatusJSON(status, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})
			return nil, closeFn, false
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return nil, closeFn, false
	}

	return &service.Upload{
		Body:        v.File,
		ContentType: v.MIME,
		Extension:   v.Extension,
	}, func() { v.File.Close() }, true
}
