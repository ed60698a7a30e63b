package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/service"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
	"github.com/Moti-Eli/edu-plus/pkg/response"
)

// AttendanceHandler exposes the instructor attendance report endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// ListMine godoc
// @Summary List my attendance reports
// @Description List the calling instructor's attendance reports, newest first
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	records, err := h.service.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// ListAll godoc
// @Summary List all attendance reports
// @Description List every instructor report. Admin only
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/all [get]
func (h *AttendanceHandler) ListAll(c *gin.Context) {
	records, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// Create godoc
// @Summary Report attendance
// @Description Record a new attendance report for the calling instructor
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.AttendanceInput true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// Update godoc
// @Summary Update attendance report
// @Description Rewrite an attendance report owned by the calling instructor
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body service.AttendanceInput true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var input service.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), c.Param("id"), claims.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete attendance report
// @Description Delete an attendance report owned by the calling instructor
// @Tags Attendance
// @Produce json
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

type adminNotesPayload struct {
	AdminNotes *string `json:"admin_notes"`
}

// SetAdminNotes godoc
// @Summary Set admin notes
// @Description Attach or clear an admin-only note on an instructor report
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body adminNotesPayload true "Notes payload"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/{id}/admin-notes [patch]
func (h *AttendanceHandler) SetAdminNotes(c *gin.Context) {
	var payload adminNotesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notes payload"))
		return
	}

	if err := h.service.SetAdminNotes(c.Request.Context(), c.Param("id"), payload.AdminNotes); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
