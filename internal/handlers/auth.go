package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"careconnect-server/internal/config"
	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
	"careconnect-server/internal/utils"
)

// AuthHandler handles signup, login, logout and token refresh.
type AuthHandler struct {
	Auth  *service.AuthService
	Store repository.Store
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, store repository.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Auth: auth, Store: store, Cfg: cfg}
}

// SignUpRequest represents the signup form.
type SignUpRequest struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	UserType        string `form:"user_type" binding:"required,oneof=patient caregiver"`
}

// SignUp handles user registration.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !utils.BindForm(c, &req) {
		return
	}

	_, err := h.Auth.SignUp(service.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.UserType),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SeeOther(c, "/login")
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Login handles user login. On success both tokens are set as HTTP-only
// cookies and the browser is redirected home.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindForm(c, &req) {
		return
	}

	user, err := h.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens")
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.Store.CreateRefreshToken(&refreshToken); err != nil {
		utils.InternalServerError(c, "Failed to store refresh token")
		return
	}

	secure := h.Cfg.Environment != "development"
	c.SetCookie("access_token", accessToken, h.Cfg.JWTExpirationMinutes*60, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60, "/", "", secure, true)

	utils.SeeOther(c, "/")
}

// RefreshToken rotates the refresh token: the presented token is revoked
// and a fresh access/refresh pair is issued.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		refreshTokenString = c.PostForm("refresh_token")
	}
	if refreshTokenString == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	claims, err := utils.ValidateToken(refreshTokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	stored, err := h.Store.RefreshTokenByToken(refreshTokenString)
	if err != nil {
		utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		return
	}

	user, err := h.Store.UserByID(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "Unknown user for refresh token")
		return
	}

	stored.IsRevoked = true
	if err := h.Store.SaveRefreshToken(stored); err != nil {
		utils.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens")
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.Store.CreateRefreshToken(&newRefreshToken); err != nil {
		utils.InternalServerError(c, "Failed to store new refresh token")
		return
	}

	secure := h.Cfg.Environment != "development"
	c.SetCookie("access_token", newAccessToken, h.Cfg.JWTExpirationMinutes*60, "/", "", secure, true)
	c.SetCookie("refresh_token", newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60, "/", "", secure, true)

	utils.Success(c, "Access token refreshed successfully", gin.H{
		"accessToken": newAccessToken,
	})
}

// Logout revokes the presented refresh token and clears both cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err == nil && refreshTokenString != "" {
		if stored, err := h.Store.RefreshTokenByToken(refreshTokenString); err == nil {
			stored.IsRevoked = true
			stored.ExpiresAt = time.Now()
			if err := h.Store.SaveRefreshToken(stored); err != nil {
				utils.InternalServerError(c, "Failed to revoke refresh token")
				return
			}
		}
	}

	secure := h.Cfg.Environment != "development"
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)

	utils.SeeOther(c, "/login")
}

// GetProfile handles fetching the currently authenticated user's account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.Store.UserByID(userID.(string))
	if err != nil {
		utils.NotFound(c, "User profile not found")
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
