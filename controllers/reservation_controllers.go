package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/blackfish/middlewares"
	"github.com/yeremiapane/blackfish/models"
	"github.com/yeremiapane/blackfish/utils"
)

type ReservationController struct{}

func NewReservationController() *ReservationController {
	return &ReservationController{}
}

const reservationsAnchor = "#reservations"

// Submit handles the posted reservation form. A missing field sends the
// visitor back to the form with the draft kept.
func (rc *ReservationController) Submit(c *gin.Context) {
	var draft models.ReservationRequest
	if err := c.ShouldBind(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	form := middlewares.CurrentPage(c).Reservations
	if err := form.Fill(draft); err != nil {
		// a submission is already running; show its progress
		c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, reservationsAnchor))
		return
	}
	if _, err := form.Submit(); err != nil {
		var query url.Values
		if verr, ok := asValidation(err); ok {
			query = url.Values{"missing": {verr.Field}}
		}
		c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, query, reservationsAnchor))
		return
	}
	c.Redirect(http.StatusSeeOther, middlewares.PageURL(c, nil, reservationsAnchor))
}

// Revise leaves the failed state with the draft kept.
func (rc *ReservationController) Revise(c *gin.Context) {
	page := middlewares.CurrentPage(c)
	reply, err := Dispatch(page, ClientEvent{Event: EventRevise})
	if err != nil {
		utils.RespondDomainError(c, err, reply.Data)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Draft reopened", reply.Data)
}

func (rc *ReservationController) SubmitJSON(c *gin.Context) {
	var draft models.ReservationRequest
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	page := middlewares.CurrentPage(c)
	reply, err := Dispatch(page, ClientEvent{Event: EventSubmit, Draft: &draft})
	if err != nil {
		utils.RespondDomainError(c, err, reply.Data)
		return
	}
	utils.RespondJSON(c, http.StatusAccepted, "Reservation submitted", reply.Data)
}

// UpdateDraft applies a map of field → value to the draft.
func (rc *ReservationController) UpdateDraft(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	form := middlewares.CurrentPage(c).Reservations
	for field, value := range fields {
		if err := form.Update(field, value); err != nil {
			utils.RespondDomainError(c, err, form.Snapshot())
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Draft updated", form.Snapshot())
}

func asValidation(err error) (models.ValidationError, bool) {
	var verr models.ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
