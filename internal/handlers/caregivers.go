package handlers

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"careconnect-server/internal/service"
	"careconnect-server/internal/utils"
)

// CaregiverHandler handles caregiver search and selection.
type CaregiverHandler struct {
	Matching     *service.MatchingService
	Appointments *service.AppointmentService
}

// NewCaregiverHandler creates a new CaregiverHandler.
func NewCaregiverHandler(matching *service.MatchingService, appointments *service.AppointmentService) *CaregiverHandler {
	return &CaregiverHandler{Matching: matching, Appointments: appointments}
}

// SearchCaregivers lists caregivers whose services or qualification text
// contains the care_needed requirement. An empty requirement lists
// everyone.
func (h *CaregiverHandler) SearchCaregivers(c *gin.Context) {
	requirement := c.Query("care_needed")
	if requirement == "" {
		requirement = c.PostForm("care_needed")
	}

	caregivers, err := h.Matching.FindCaregivers(requirement)
	if err != nil {
		utils.InternalServerError(c, "Failed to search caregivers")
		return
	}

	utils.Success(c, "Caregivers fetched successfully", caregivers)
}

// SelectCaregiverRequest represents the caregiver selection form.
type SelectCaregiverRequest struct {
	CaregiverID string `form:"caregiver_id" binding:"required"`
}

// SelectCaregiver records the chosen caregiver by redirecting to the
// booking form with the selection carried in the query string.
func (h *CaregiverHandler) SelectCaregiver(c *gin.Context) {
	var req SelectCaregiverRequest
	if !utils.BindForm(c, &req) {
		return
	}

	utils.SeeOther(c, "/schedule_appointment?caregiver_id="+url.QueryEscape(req.CaregiverID))
}

// CaregiverReviews lists the reviews left for a caregiver, newest first.
func (h *CaregiverHandler) CaregiverReviews(c *gin.Context) {
	reviews, err := h.Appointments.ReviewsForCaregiver(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Reviews fetched successfully", reviews)
}
