package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomgate/backend/internal/model"
	"github.com/roomgate/backend/internal/service"
)

type MeetingHandler struct {
	svc *service.MeetingService
}

func NewMeetingHandler(svc *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

// Create godoc
// @Summary Create a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateMeetingRequest true "Meeting"
// @Success 201 {object} model.Meeting
// @Failure 400 {object} model.ValidationErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	var req model.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	meeting, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meeting)
}

// List godoc
// @Summary List meetings
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param organizer query string false "Filter by organizer ID"
// @Param month query string false "Filter by month (YYYY-MM)"
// @Success 200 {array} model.Meeting
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.svc.List(c.Request.Context(), c.Query("organizer"), c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// Get godoc
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} model.Meeting
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

// Update godoc
// @Summary Update a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Param request body model.UpdateMeetingRequest true "Fields to change"
// @Success 200 {object} model.Meeting
// @Failure 400 {object} model.ValidationErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings/{id} [put]
func (h *MeetingHandler) Update(c *gin.Context) {
	var req model.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	meeting, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

// Delete godoc
// @Summary Delete a meeting
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} model.MessageResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Meeting deleted successfully"})
}

// MonthlyHours godoc
// @Summary Total meeting hours in a given month
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} model.MeetingHoursResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/meetings/analytics/hours/{year}/{month} [get]
func (h *MeetingHandler) MonthlyHours(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid month"})
		return
	}

	res, err := h.svc.MonthlyHours(c.Request.Context(), year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
