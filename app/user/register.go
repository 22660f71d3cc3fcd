package user

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserRegister creates a user awaiting approval, or returns the existing
// one when the uid is already registered
func UserRegister(c *gin.Context, d *internal.Deps) {
	var data service.Profile
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	u, created, err := d.Registration.CreateOrGet(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, u)
}
