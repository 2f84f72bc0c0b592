package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"careconnect-server/internal/config"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/routes"
	"careconnect-server/internal/service"
)

func newTestRouter() (*gin.Engine, *repository.MemoryStore) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 24,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := repository.NewMemoryStore()
	services := &routes.Services{
		Auth:     service.NewAuthService(store, logger),
		Profiles: service.NewProfileService(store, service.StubVerifier{}, logger),
		Matching: service.NewMatchingService(store, logger),
		Appointments: service.NewAppointmentService(
			store, &service.StubGateway{}, service.LeastRecentlyAssigned{}, logger),
	}

	router := gin.New()
	routes.SetupRoutes(router, store, cfg, services)
	return router, store
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signUpAndLogin(t *testing.T, router *gin.Engine, name, email, role string) []*http.Cookie {
	t.Helper()

	w := postForm(router, "/signup", url.Values{
		"name":             {name},
		"email":            {email},
		"password":         {"secret-password"},
		"confirm_password": {"secret-password"},
		"user_type":        {role},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = postForm(router, "/login", url.Values{
		"email":    {email},
		"password": {"secret-password"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter()
	signUpAndLogin(t, router, "Amina", "amina@x.com", "patient")

	w := postForm(router, "/signup", url.Values{
		"name":             {"Impostor"},
		"email":            {"amina@x.com"},
		"password":         {"secret-password"},
		"confirm_password": {"secret-password"},
		"user_type":        {"patient"},
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailureIsOpaque(t *testing.T) {
	router, _ := newTestRouter()
	signUpAndLogin(t, router, "Amina", "amina@x.com", "patient")

	unknown := postForm(router, "/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"secret-password"},
	}, nil)
	wrong := postForm(router, "/login", url.Values{
		"email":    {"amina@x.com"},
		"password": {"bad-password"},
	}, nil)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestAppointmentsRequireAuthentication(t *testing.T) {
	router, _ := newTestRouter()
	w := get(router, "/appointments", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingWorkflowOverHTTP(t *testing.T) {
	router, store := newTestRouter()

	// Caregiver signs up, registers a profile, stays available.
	caregiverCookies := signUpAndLogin(t, router, "Beatrice", "beatrice@x.com", "caregiver")
	w := postForm(router, "/register/caregiver", url.Values{
		"caregiver_name":     {"Beatrice"},
		"caregiver_phone":    {"0711111111"},
		"sex":                {"F"},
		"caregiver_location": {"Nairobi"},
		"qualification":      {"Registered Nurse"},
		"experience":         {"5 years"},
		"services_offered":   {"Palliative care, Feeding"},
	}, caregiverCookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Patient signs up and registers a profile.
	patientCookies := signUpAndLogin(t, router, "Amina", "amina@x.com", "patient")
	w = postForm(router, "/register/patient", url.Values{
		"patient_name":     {"Amina"},
		"patient_number":   {"0700000000"},
		"sex":              {"F"},
		"condition":        {"Post surgery"},
		"patient_location": {"Nairobi"},
		"care_needed":      {"Palliative care"},
	}, patientCookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/search_caregivers", w.Header().Get("Location"))

	// Search finds the caregiver by requirement substring.
	w = get(router, "/search_caregivers?care_needed=Palliative+care", patientCookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Beatrice")

	caregivers, err := store.ListCaregivers()
	require.NoError(t, err)
	require.Len(t, caregivers, 1)
	caregiverID := caregivers[0].ID

	// Book.
	w = postForm(router, "/schedule_appointment", url.Values{
		"caregiver_id":      {caregiverID},
		"date_time":         {"2025-01-01T10:00"},
		"duration":          {"60"},
		"location":          {"Nairobi"},
		"care_requirements": {"Palliative care"},
	}, patientCookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/caregiving_session/"))
	appointmentID := strings.TrimPrefix(location, "/caregiving_session/")

	// Pay.
	w = postForm(router, "/confirm_payment", url.Values{
		"appointment_id": {appointmentID},
	}, patientCookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Dispatch.
	w = postForm(router, "/dispatch_caregiver/"+appointmentID, nil, patientCookies)
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Out-of-range rating is rejected.
	w = postForm(router, "/complete_and_feedback/"+appointmentID, url.Values{
		"feedback": {"great"},
		"rating":   {"7"},
	}, patientCookies)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Complete with a valid rating.
	w = postForm(router, "/complete_and_feedback/"+appointmentID, url.Values{
		"feedback": {"great care"},
		"rating":   {"5"},
		"comments": {"would book again"},
	}, patientCookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Cancelling a completed appointment is refused.
	w = postForm(router, "/cancel_appointment/"+appointmentID, nil, patientCookies)
	require.Equal(t, http.StatusConflict, w.Code)

	// Exactly one review exists for the caregiver.
	reviews, err := store.ReviewsByCaregiver(caregiverID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Equal(t, 5, reviews[0].Rating)

	w = get(router, "/caregiver_reviews/"+caregiverID, patientCookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "would book again")
}
