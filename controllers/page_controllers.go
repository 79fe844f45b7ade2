package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/content"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
)

// PageView is the data behind the page template.
type PageView struct {
	Venue            content.Venue
	Menu             []models.MenuItem
	Filters          []models.GalleryFilter
	NavLinks         []components.NavLink
	ReservationsLink components.NavLink
	TimeSlots        []string
	GuestOptions     []string
	HeroVideo        string
	State            components.PageSnapshot
	Notice           string
	Year             int
}

type PageController struct {
	Site      *content.Site
	HeroVideo string
}

func NewPageController(site *content.Site, heroVideo string) *PageController {
	if heroVideo == "" {
		heroVideo = site.Venue.HeroVideo
	}
	return &PageController{Site: site, HeroVideo: heroVideo}
}

// Index renders the whole page from the visitor's component state.
func (pc *PageController) Index(c *gin.Context) {
	page := middlewares.CurrentPage(c)
	view := PageView{
		Venue:            pc.Site.Venue,
		Menu:             pc.Site.Menu,
		Filters:          models.GalleryFilters,
		NavLinks:         components.NavLinks,
		ReservationsLink: components.ReservationsLink,
		TimeSlots:        models.TimeSlots,
		GuestOptions:     models.GuestOptions,
		HeroVideo:        pc.HeroVideo,
		State:            page.Snapshot(),
		Notice:           noticeFor(c.Query("missing")),
		Year:             time.Now().Year(),
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index", view)
}

// State returns the visitor's component state as JSON.
func (pc *PageController) State(c *gin.Context) {
	page := middlewares.CurrentPage(c)
	utils.RespondJSON(c, http.StatusOK, "Page state", page.Snapshot())
}

// noticeFor turns the field reported by a failed form post back into copy.
func noticeFor(field string) string {
	switch field {
	case "":
		return ""
	case "name", "email", "phone", "date", "time", "guests":
		return "Please fill in your " + field + " before requesting a reservation."
	}
	return ""
}
