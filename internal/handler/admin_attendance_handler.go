package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Moti-Eli/edu-plus/internal/service"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
	"github.com/Moti-Eli/edu-plus/pkg/response"
)

// AdminAttendanceHandler exposes the admin-side attendance ledger endpoints.
type AdminAttendanceHandler struct {
	service *service.AdminAttendanceService
}

// NewAdminAttendanceHandler creates a new admin attendance handler.
func NewAdminAttendanceHandler(svc *service.AdminAttendanceService) *AdminAttendanceHandler {
	return &AdminAttendanceHandler{service: svc}
}

// List godoc
// @Summary List admin attendance records
// @Description List every record in the admin attendance ledger
// @Tags AdminAttendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-attendance [get]
func (h *AdminAttendanceHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// Create godoc
// @Summary Create admin attendance record
// @Description Add a record to the admin attendance ledger
// @Tags AdminAttendance
// @Accept json
// @Produce json
// @Param payload body service.AdminAttendanceInput true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-attendance [post]
func (h *AdminAttendanceHandler) Create(c *gin.Context) {
	var input service.AdminAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// Update godoc
// @Summary Update admin attendance record
// @Description Rewrite a record in the admin attendance ledger
// @Tags AdminAttendance
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.AdminAttendanceInput true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-attendance/{id} [put]
func (h *AdminAttendanceHandler) Update(c *gin.Context) {
	var input service.AdminAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete admin attendance record
// @Description Remove a record from the admin attendance ledger
// @Tags AdminAttendance
// @Produce json
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin-attendance/{id} [delete]
func (h *AdminAttendanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
