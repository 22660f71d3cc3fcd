package user

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserUpdate(c *gin.Context, d *internal.Deps) {
	var p model.UserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	u, err := d.Users.Update(c.Request.Context(), c.Param("uid"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func UserDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Users.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type fcmTokenBody struct {
	FCMToken string `json:"fcmToken"`
}

func UserSaveFCMToken(c *gin.Context, d *internal.Deps) {
	var data fcmTokenBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	u, err := d.Users.SaveFCMToken(c.Request.Context(), c.Param("uid"), data.FCMToken)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func UserClearFCMToken(c *gin.Context, d *internal.Deps) {
	if err := d.Users.ClearFCMToken(c.Request.Context(), c.Param("uid")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
