package notification

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/service"
	"bitwise74/medflow-api/validators"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type broadcastBody struct {
	service.Notification
	// Empty means everyone
	Role string `json:"role"`
}

func NotifyUser(c *gin.Context, d *internal.Deps) {
	var n service.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		respond.BadRequest(c, err)
		return
	}

	res, err := d.Notifier.NotifyUser(c.Request.Context(), c.Param("uid"), n)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func Broadcast(c *gin.Context, d *internal.Deps) {
	var data broadcastBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	if data.Role != "" {
		if err := validators.RoleValidator(data.Role); err != nil {
			respond.Error(c, &service.ValidationError{Msg: err.Error()})
			return
		}
	}

	res, err := d.Notifier.NotifyRole(c.Request.Context(), data.Role, data.Notification)
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Info("Broadcast sent",
		zap.String("role", data.Role),
		zap.Int("success", res.SuccessCount),
		zap.Int("failure", res.FailureCount),
		zap.String("requestID", c.GetString("requestID")),
	)

	c.JSON(http.StatusOK, res)
}
