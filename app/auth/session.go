package auth

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionBody struct {
	IDToken string `json:"idToken"`
}

// AuthSession exchanges a Firebase ID token for an API session token.
// Users still waiting for approval are turned away.
func AuthSession(c *gin.Context, d *internal.Deps) {
	var data sessionBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	s, err := d.Registration.IssueSession(c.Request.Context(), data.IDToken)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// AuthValidate runs behind the JWT middleware, reaching it means the
// token is fine
func AuthValidate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uid":  c.GetString("userID"),
		"role": c.GetString("role"),
	})
}
