package question

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func QuestionList(c *gin.Context, d *internal.Deps) {
	out, err := d.Questions.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func QuestionsByStudent(c *gin.Context, d *internal.Deps) {
	out, err := d.Questions.ByStudent(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func QuestionCreate(c *gin.Context, d *internal.Deps) {
	var data service.QuestionInput
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	q, err := d.Questions.Create(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, q)
}

func QuestionUpdate(c *gin.Context, d *internal.Deps) {
	var p model.QuestionPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	q, err := d.Questions.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func QuestionDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Questions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
