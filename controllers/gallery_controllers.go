package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
)

type GalleryController struct{}

func NewGalleryController() *GalleryController {
	return &GalleryController{}
}

const galleryAnchor = "#gallery"

// SelectCategory handles the filter buttons posted as a form.
func (gc *GalleryController) SelectCategory(c *gin.Context) {
	category := models.GalleryCategory(c.PostForm("category"))
	if err := middlewares.CurrentPage(c).Gallery.SelectCategory(category); err != nil {
		utils.RespondError(c, utils.StatusFor(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, galleryAnchor))
}

func (gc *GalleryController) Open(c *gin.Context) {
	id, err := imageID(c)
	if err == nil {
		err = middlewares.CurrentPage(c).Gallery.Open(id)
	}
	if err != nil {
		utils.RespondError(c, utils.StatusFor(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, galleryAnchor))
}

func (gc *GalleryController) Close(c *gin.Context) {
	via := components.CloseAffordance(c.DefaultPostForm("via", string(components.CloseButton)))
	if err := middlewares.CurrentPage(c).Gallery.Close(via); err != nil {
		utils.RespondError(c, utils.StatusFor(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, galleryAnchor))
}

func (gc *GalleryController) SelectCategoryJSON(c *gin.Context) {
	var body struct {
		Category models.GalleryCategory `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	gc.respond(c, ClientEvent{Event: EventSelectCategory, Category: body.Category}, "Category selected")
}

func (gc *GalleryController) OpenJSON(c *gin.Context) {
	id, err := imageID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	gc.respond(c, ClientEvent{Event: EventOpenLightbox, ImageID: id}, "Lightbox opened")
}

func (gc *GalleryController) CloseJSON(c *gin.Context) {
	var body struct {
		Via components.CloseAffordance `json:"via" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	gc.respond(c, ClientEvent{Event: EventCloseLightbox, Via: body.Via}, "Lightbox closed")
}

// ClickInside records a click on the enlarged image. The lightbox stays open.
func (gc *GalleryController) ClickInside(c *gin.Context) {
	page := middlewares.CurrentPage(c)
	page.Gallery.ClickInside()
	utils.RespondJSON(c, http.StatusOK, "Lightbox unchanged", page.Gallery.Snapshot())
}

func (gc *GalleryController) respond(c *gin.Context, ev ClientEvent, message string) {
	page := middlewares.CurrentPage(c)
	if _, err := Dispatch(page, ev); err != nil {
		utils.RespondDomainError(c, err, page.Gallery.Snapshot())
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, page.Gallery.Snapshot())
}

func imageID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("image_id"))
	if err != nil {
		return 0, models.ValidationError{Field: "image_id", Msg: "must be a number"}
	}
	return id, nil
}
