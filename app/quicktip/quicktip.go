package quicktip

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

type replaceBody struct {
	Tips []model.TipInput `json:"tips"`
}

func QuickTipSummaries(c *gin.Context, d *internal.Deps) {
	out, err := d.QuickTips.Summaries(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// QuickTipFetch returns the active tips of a category, most important first
func QuickTipFetch(c *gin.Context, d *internal.Deps) {
	view, err := d.QuickTips.ByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func QuickTipReplace(c *gin.Context, d *internal.Deps) {
	var data replaceBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	qt, err := d.QuickTips.Replace(c.Request.Context(), c.Param("categoryId"), data.Tips)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, qt)
}

func TipAdd(c *gin.Context, d *internal.Deps) {
	var data model.TipInput
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	qt, err := d.QuickTips.AddTip(c.Request.Context(), c.Param("categoryId"), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, qt)
}

func TipUpdate(c *gin.Context, d *internal.Deps) {
	var p model.TipPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	qt, err := d.QuickTips.UpdateTip(c.Request.Context(), c.Param("categoryId"), c.Param("tipId"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, qt)
}

func TipDelete(c *gin.Context, d *internal.Deps) {
	if err := d.QuickTips.DeleteTip(c.Request.Context(), c.Param("categoryId"), c.Param("tipId")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
