package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/utils"
)

// ClientLog records browser-side problems such as the hero video failing to
// autoplay. They are logged only; nothing is shown to the visitor.
func ClientLog(c *gin.Context) {
	var body struct {
		Level   string `json:"level"`
		Source  string `json:"source" binding:"required,max=64"`
		Message string `json:"message" binding:"max=512"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry := utils.InfoLogger.WithFields(logrus.Fields{
		"source":     body.Source,
		"request_id": middlewares.GetRequestID(c),
	})
	if page := middlewares.CurrentPage(c); page != nil {
		entry = entry.WithField("page_id", page.ID)
	}
	if body.Level == "error" {
		entry.Error(body.Message)
	} else {
		entry.Warn(body.Message)
	}
	c.Status(http.StatusNoContent)
}
