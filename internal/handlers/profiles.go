package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect-server/internal/middleware"
	"careconnect-server/internal/models"
	"careconnect-server/internal/service"
	"careconnect-server/internal/utils"
)

// ProfileHandler handles patient and caregiver profile registration.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// RegisterPatientRequest represents the patient registration form.
type RegisterPatientRequest struct {
	Name        string `form:"patient_name" binding:"required"`
	PhoneNumber string `form:"patient_number" binding:"required"`
	Sex         string `form:"sex" binding:"required"`
	Condition   string `form:"condition" binding:"required"`
	Location    string `form:"patient_location" binding:"required"`
	CareNeeded  string `form:"care_needed" binding:"required"`
	Preferences string `form:"preferences"`
}

// RegisterPatient creates the patient profile for the logged-in user.
func (h *ProfileHandler) RegisterPatient(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req RegisterPatientRequest
	if !utils.BindForm(c, &req) {
		return
	}

	_, err := h.Profiles.RegisterPatient(userID, service.PatientParams{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
		Condition:   req.Condition,
		Location:    req.Location,
		CareNeeded:  req.CareNeeded,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/search_caregivers")
}

// RegisterCaregiverRequest represents the caregiver registration form.
// The license document arrives as the multipart "license" file field.
type RegisterCaregiverRequest struct {
	Name            string `form:"caregiver_name" binding:"required"`
	PhoneNumber     string `form:"caregiver_phone" binding:"required"`
	Sex             string `form:"sex" binding:"required"`
	Location        string `form:"caregiver_location" binding:"required"`
	Qualification   string `form:"qualification" binding:"required"`
	Experience      string `form:"experience" binding:"required"`
	ServicesOffered string `form:"services_offered" binding:"required"`
}

// RegisterCaregiver creates the caregiver profile for the logged-in user,
// storing and verifying the uploaded license when one is attached.
func (h *ProfileHandler) RegisterCaregiver(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req RegisterCaregiverRequest
	if !utils.BindForm(c, &req) {
		return
	}

	var license *service.LicenseUpload
	file, header, err := c.Request.FormFile("license")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			utils.InternalServerError(c, "Error reading license file")
			return
		}
		license = &service.LicenseUpload{
			FileName: header.Filename,
			FileType: header.Header.Get("Content-Type"),
			Data:     data,
		}
	}

	_, err = h.Profiles.RegisterCaregiver(userID, service.CaregiverParams{
		Name:            req.Name,
		PhoneNumber:     req.PhoneNumber,
		Sex:             req.Sex,
		Location:        req.Location,
		Qualification:   req.Qualification,
		Experience:      req.Experience,
		ServicesOffered: req.ServicesOffered,
	}, license)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/")
}

// SetAvailabilityRequest represents the availability form.
type SetAvailabilityRequest struct {
	Available *bool `form:"available" binding:"required"`
}

// SetAvailability toggles whether the logged-in caregiver can be
// dispatched.
func (h *ProfileHandler) SetAvailability(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetAvailabilityRequest
	if !utils.BindForm(c, &req) {
		return
	}

	caregiver, err := h.Profiles.SetAvailability(userID, *req.Available)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Availability updated", caregiver)
}

// DownloadLicense serves a stored license document. Only the owning
// caregiver and admins may fetch it.
func (h *ProfileHandler) DownloadLicense(c *gin.Context) {
	doc, err := h.Profiles.LicenseByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin {
		caregiver, err := h.Profiles.CaregiverForUser(userID)
		if err != nil || caregiver.ID != doc.CaregiverID {
			utils.Forbidden(c, "You are not authorized to view this document")
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.FileType, doc.FileData)
}
