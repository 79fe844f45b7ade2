package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/utils"
)

type NavbarController struct{}

func NewNavbarController() *NavbarController {
	return &NavbarController{}
}

// ToggleMenu is the no-script fallback of the mobile menu button.
func (nc *NavbarController) ToggleMenu(c *gin.Context) {
	middlewares.CurrentPage(c).Navbar.ToggleMenu()
	c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, "#navbar"))
}

func (nc *NavbarController) ToggleMenuJSON(c *gin.Context) {
	page := middlewares.CurrentPage(c)
	page.Navbar.ToggleMenu()
	utils.RespondJSON(c, http.StatusOK, "Menu toggled", page.Navbar.Snapshot())
}

func (nc *NavbarController) Scroll(c *gin.Context) {
	var body struct {
		Y *float64 `json:"y" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	page := middlewares.CurrentPage(c)
	page.Navbar.Scroll(*body.Y)
	utils.RespondJSON(c, http.StatusOK, "Scroll recorded", page.Navbar.Snapshot())
}
