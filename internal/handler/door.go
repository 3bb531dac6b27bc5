package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomgate/backend/internal/model"
	"github.com/roomgate/backend/internal/service"
)

// DoorHandler serves the badge readers. These routes carry no bearer token;
// the badge is the credential.
type DoorHandler struct {
	svc *service.DoorService
}

func NewDoorHandler(svc *service.DoorService) *DoorHandler {
	return &DoorHandler{svc: svc}
}

// ValidateCode godoc
// @Summary Validate a badge scan using a numeric room code
// @Tags door
// @Produce json
// @Param cardID path string true "Badge card ID"
// @Param roomId path string true "Numeric room code"
// @Success 200 {object} model.DoorValidateResponse
// @Failure 400 {object} model.DoorValidateResponse
// @Failure 500 {object} model.DoorValidateResponse
// @Router /door/validate/{cardID}/{roomId} [post]
func (h *DoorHandler) ValidateCode(c *gin.Context) {
	res, err := h.svc.Validate(c.Request.Context(), c.Param("cardID"), c.Param("roomId"), service.ResolveRoomCode)
	if err != nil {
		writeDoorError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ValidateLabel godoc
// @Summary Validate a badge scan using a direct room label
// @Tags door
// @Accept json
// @Produce json
// @Param request body model.DoorValidateRequest true "Badge and room"
// @Success 200 {object} model.DoorValidateResponse
// @Failure 400 {object} model.DoorValidateResponse
// @Failure 500 {object} model.DoorValidateResponse
// @Router /door/validate [post]
func (h *DoorHandler) ValidateLabel(c *gin.Context) {
	var req model.DoorValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.DoorValidateResponse{Allow: false, Message: "Invalid room ID"})
		return
	}

	res, err := h.svc.Validate(c.Request.Context(), req.CardID, req.Room, service.ResolveRoomLabel)
	if err != nil {
		writeDoorError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RecentScans godoc
// @Summary List recent badge scan audit entries
// @Tags door
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {array} model.ScanRecord
// @Failure 500 {object} model.ErrorResponse
// @Router /api/scans [get]
func (h *DoorHandler) RecentScans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	records, err := h.svc.RecentScans(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func writeDoorError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, model.DoorValidateResponse{Allow: false, Message: "Invalid room ID"})
		return
	}
	log.Printf("door validation error: %v", err)
	c.JSON(http.StatusInternalServerError, model.DoorValidateResponse{Allow: false, Message: "Server error"})
}
