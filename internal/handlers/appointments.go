package handlers

import (
	"github.com/gin-gonic/gin"

	"careconnect-server/internal/middleware"
	"careconnect-server/internal/models"
	"careconnect-server/internal/service"
	"careconnect-server/internal/utils"
)

// AppointmentHandler handles the booking workflow and the appointment
// lifecycle endpoints.
type AppointmentHandler struct {
	Appointments *service.AppointmentService
	Profiles     *service.ProfileService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *service.AppointmentService, profiles *service.ProfileService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Profiles: profiles}
}

// ScheduleRequest represents the booking form.
type ScheduleRequest struct {
	CaregiverID      string `form:"caregiver_id" binding:"required"`
	DateTime         string `form:"date_time" binding:"required"`
	Duration         int    `form:"duration" binding:"required"`
	Location         string `form:"location" binding:"required"`
	CareRequirements string `form:"care_requirements"`
}

// Schedule books a new appointment for the logged-in patient.
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	patient, err := h.Profiles.PatientForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req ScheduleRequest
	if !utils.BindForm(c, &req) {
		return
	}

	appointment, err := h.Appointments.Book(service.BookParams{
		PatientID:        patient.ID,
		CaregiverID:      req.CaregiverID,
		DateTime:         req.DateTime,
		DurationMinutes:  req.Duration,
		Location:         req.Location,
		CareRequirements: req.CareRequirements,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/caregiving_session/"+appointment.ID)
}

// List returns the appointments of the logged-in user, patient or
// caregiver side depending on the role.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error
	switch role {
	case models.RolePatient:
		var patient *models.Patient
		patient, err = h.Profiles.PatientForUser(userID)
		if err == nil {
			appointments, err = h.Appointments.ForPatient(patient.ID)
		}
	case models.RoleCaregiver:
		var caregiver *models.Caregiver
		caregiver, err = h.Profiles.CaregiverForUser(userID)
		if err == nil {
			appointments, err = h.Appointments.ForCaregiver(caregiver.ID)
		}
	default:
		utils.Forbidden(c, "User role not permitted to list appointments")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// ConfirmPaymentRequest represents the payment confirmation form.
type ConfirmPaymentRequest struct {
	AppointmentID string `form:"appointment_id" binding:"required"`
}

// ConfirmPayment runs the mocked payment and marks the appointment paid.
func (h *AppointmentHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if !utils.BindForm(c, &req) {
		return
	}

	if !h.authorizedForAppointment(c, req.AppointmentID) {
		return
	}

	if _, err := h.Appointments.ConfirmPayment(req.AppointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/caregiving_session/"+req.AppointmentID)
}

// Dispatch assigns an available caregiver to a scheduled appointment.
func (h *AppointmentHandler) Dispatch(c *gin.Context) {
	appointmentID := c.Param("id")
	if !h.authorizedForAppointment(c, appointmentID) {
		return
	}

	if _, err := h.Appointments.Dispatch(appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/caregiving_session/"+appointmentID)
}

// Session shows one appointment to its involved parties.
func (h *AppointmentHandler) Session(c *gin.Context) {
	appointment, ok := h.loadAuthorized(c, c.Param("id"))
	if !ok {
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CompleteRequest represents the completion + feedback form.
type CompleteRequest struct {
	Feedback string `form:"feedback" binding:"required"`
	Rating   int    `form:"rating" binding:"required"`
	Comments string `form:"comments"`
}

// Complete closes a dispatched appointment and records the review.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	appointmentID := c.Param("id")
	if !h.authorizedForAppointment(c, appointmentID) {
		return
	}

	var req CompleteRequest
	if !utils.BindForm(c, &req) {
		return
	}

	appointment, review, err := h.Appointments.Complete(appointmentID, req.Feedback, req.Rating, req.Comments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Appointment completed", gin.H{
		"appointment": appointment,
		"review":      review,
	})
}

// Cancel marks an open appointment cancelled.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appointmentID := c.Param("id")
	if !h.authorizedForAppointment(c, appointmentID) {
		return
	}

	if err := h.Appointments.Cancel(appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/appointments")
}

// RescheduleRequest represents the reschedule form.
type RescheduleRequest struct {
	DateTime string `form:"date_time" binding:"required"`
	Duration int    `form:"duration" binding:"required"`
	Location string `form:"location"`
	Notes    string `form:"notes"`
}

// Reschedule moves an open appointment to a new time slot.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	appointmentID := c.Param("id")
	if !h.authorizedForAppointment(c, appointmentID) {
		return
	}

	var req RescheduleRequest
	if !utils.BindForm(c, &req) {
		return
	}

	_, err := h.Appointments.Reschedule(appointmentID, service.RescheduleParams{
		DateTime:        req.DateTime,
		DurationMinutes: req.Duration,
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/caregiving_session/"+appointmentID)
}

// loadAuthorized fetches the appointment and checks that the requester is
// one of its parties (or an admin). On failure the response is already
// written and ok is false.
func (h *AppointmentHandler) loadAuthorized(c *gin.Context, appointmentID string) (*models.Appointment, bool) {
	appointment, err := h.Appointments.ByID(appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	switch role {
	case models.RoleAdmin:
		return appointment, true
	case models.RolePatient:
		patient, err := h.Profiles.PatientForUser(userID)
		if err == nil && patient.ID == appointment.PatientID {
			return appointment, true
		}
	case models.RoleCaregiver:
		caregiver, err := h.Profiles.CaregiverForUser(userID)
		if err == nil && caregiver.ID == appointment.CaregiverID {
			return appointment, true
		}
	}

	utils.Forbidden(c, "You are not authorized to access this appointment")
	return nil, false
}

func (h *AppointmentHandler) authorizedForAppointment(c *gin.Context, appointmentID string) bool {
	_, ok := h.loadAuthorized(c, appointmentID)
	return ok
}
