package device

import (
	"bitwise74/medflow-api/app/respond"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func DeviceCreate(c *gin.Context, d *internal.Deps) {
	var data service.DeviceInput
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	dev, err := d.Devices.Create(c.Request.Context(), data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dev)
}

func DeviceList(c *gin.Context, d *internal.Deps) {
	out, err := d.Devices.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func DeviceFetch(c *gin.Context, d *internal.Deps) {
	dev, err := d.Devices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dev)
}

func DeviceByName(c *gin.Context, d *internal.Deps) {
	out, err := d.Devices.ByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func DeviceByCategory(c *gin.Context, d *internal.Deps) {
	out, err := d.Devices.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func DeviceUpdate(c *gin.Context, d *internal.Deps) {
	var p model.DevicePatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.BadRequest(c, err)
		return
	}

	dev, err := d.Devices.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dev)
}

func DeviceDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Devices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
