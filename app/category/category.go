package category

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/app/upload"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoryCreate accepts JSON or a multipart form with an optional image
func CategoryCreate(c *gin.Context, d *internal.Deps) {
	var data service.CategoryInput
	if err := c.ShouldBind(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	img, closeImg, ok := upload.Image(c, d.Config)
	if !ok {
		return
	}
	defer closeImg()

	cat, err := d.Categories.Create(c.Request.Context(), data, img)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}

func CategoryList(c *gin.Context, d *internal.Deps) {
	out, err := d.Categories.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func CategoryFetch(c *gin.Context, d *internal.Deps) {
	cat, err := d.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

// CategoryDescription looks a category up by name and returns only its
// id and description
func CategoryDescription(c *gin.Context, d *internal.Deps) {
	desc, err := d.Categories.DescriptionByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, desc)
}

func CategoryUpdate(c *gin.Context, d *internal.Deps) {
	var p model.CategoryPatch
	if err := c.ShouldBind(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	img, closeImg, ok := upload.Image(c, d.Config)
	if !ok {
		return
	}
	defer closeImg()

	cat, err := d.Categories.Update(c.Request.Context(), c.Param("id"), p, img)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, cat)
}

// CategoryDelete moves the category's devices to the default category
// before removing it
func CategoryDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
