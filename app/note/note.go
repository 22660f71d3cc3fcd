package note

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type noteBody struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// NoteList takes an optional userId query parameter
func NoteList(c *gin.Context, d *internal.Deps) {
	out, err := d.Notes.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func NoteCreate(c *gin.Context, d *internal.Deps) {
	var data noteBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	n, err := d.Notes.Create(c.Request.Context(), data.UserID, data.Text)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

func NoteUpdate(c *gin.Context, d *internal.Deps) {
	var data noteBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	n, err := d.Notes.Update(c.Request.Context(), c.Param("id"), data.Text)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

func NoteDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// NoteDeleteAll wipes every note, or only those of the userId query
// parameter
func NoteDeleteAll(c *gin.Context, d *internal.Deps) {
	n, err := d.Notes.DeleteAll(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	zap.L().Debug("Deleted notes", zap.Int64("count", n), zap.String("requestID", c.GetString("requestID")))
	c.Status(http.StatusNoContent)
}
