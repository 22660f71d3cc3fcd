package user

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserList(c *gin.Context, d *internal.Deps) {
	users, err := d.Users.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func UserFetch(c *gin.Context, d *internal.Deps) {
	u, err := d.Users.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func UserRole(c *gin.Context, d *internal.Deps) {
	role, err := d.Registration.GetRole(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}
