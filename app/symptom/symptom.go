package symptom

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/app/upload"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SymptomCreate accepts JSON or a multipart form with an optional image
func SymptomCreate(c *gin.Context, d *internal.Deps) {
	var data service.SymptomInput
	if err := c.ShouldBind(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	img, closeImg, ok := upload.Image(c, d.Config)
	if !ok {
		return
	}
	defer closeImg()

	s, err := d.Symptoms.Create(c.Request.Context(), data, img)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func SymptomList(c *gin.Context, d *internal.Deps) {
	out, err := d.Symptoms.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func SymptomFetch(c *gin.Context, d *internal.Deps) {
	s, err := d.Symptoms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func SymptomByName(c *gin.Context, d *internal.Deps) {
	s, err := d.Symptoms.ByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func SymptomUpdate(c *gin.Context, d *internal.Deps) {
	var p model.SymptomPatch
	if err := c.ShouldBind(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	img, closeImg, ok := upload.Image(c, d.Config)
	if !ok {
		return
	}
	defer closeImg()

	s, err := d.Symptoms.Update(c.Request.Context(), c.Param("id"), p, img)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func SymptomDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Symptoms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
