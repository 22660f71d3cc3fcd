package user

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserVerify is opened by an admin from the approval email, so it answers
// with a page instead of JSON
func UserVerify(c *gin.Context, d *internal.Deps) {
	u, err := d.Registration.Verify(c.Request.Context(), c.Query("uid"), c.Query("token"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Info("User verified", zap.String("uid", u.UID), zap.String("requestID", c.GetString("requestID")))
	respond.VerifyPage(c, true)
}

// UserResendVerification mails the admin a fresh approval link
func UserResendVerification(c *gin.Context, d *internal.Deps) {
	if err := d.Registration.ResendVerification(c.Request.Context(), c.Param("uid")); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Verification email sent",
	})
}
