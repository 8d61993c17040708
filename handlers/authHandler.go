package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"ClinicFlow/utils"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// staffRoles are every role allowed to hold a session token.
var staffRoles = []string{"Admin", "Doctor", "Nurse", "Pharmacist", "Cashier"}

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// extractAccessToken pulls the token from URL query parameters.
func extractAccessToken(c *gin.Context) (string, error) {
	token := c.DefaultQuery("accessToken", "")
	if token == "" {
		return "", fmt.Errorf("access token is required")
	}
	return token, nil
}

// authorizedClaims validates the token against the staff roles and returns
// the parsed user ID.
func authorizedClaims(c *gin.Context) (int64, *utils.TokenClaims, bool) {
	token, err := extractAccessToken(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return 0, nil, false
	}
	claims, err := utils.ValidateToken(token, staffRoles...)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid access token"})
		return 0, nil, false
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		c.JSON(500, gin.H{"error": "Invalid user ID"})
		return 0, nil, false
	}
	return userID, claims, true
}

// Register handles new staff account registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ValidateAndCreateUser(c.Request.Context(), &user); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(201)
}

// Login authenticates the user and returns tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.UserService.AuthenticateUser(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		middlewares.HttpError(c, "Failed to generate tokens", 500, err)
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshToken refreshes the user's access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	_, claims, ok := authorizedClaims(c)
	if !ok {
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		middlewares.HttpError(c, "Failed to generate access token", 500, err)
		return
	}
	c.JSON(200, gin.H{"accessToken": accessToken})
}

// Logoff logs the user out by clearing cookies
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// DeleteAccount removes a staff account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(200)
}

// SendResetCode sends a password reset code to the user's email
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, user.Email, code); err != nil {
		middlewares.HttpError(c, "Failed to set reset code", 500, err)
		return
	}

	// Best-effort side channel: the reset code is stored either way, so a
	// slow or failing mail server never fails the request.
	utils.SendResetCodeEmailAsync(user.Email, code)
	c.Status(200)
}

// GetUserProfile retrieves the current user's profile
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	userID, _, ok := authorizedClaims(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"user": user})
}

// UpdateUserProfile updates the user's profile information
func (h *AuthHandler) UpdateUserProfile(c *gin.Context) {
	userID, _, ok := authorizedClaims(c)
	if !ok {
		return
	}

	var updateData struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.UpdateUserProfile(c.Request.Context(), userID, updateData.Username, updateData.Email); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.Status(200)
}

// ChangePassword updates the user's password using a reset code
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := utils.ValidatePasswordReset(data.Code, data.NewPassword); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	storedCode, err := utils.GetResetCode(ctx, data.Email)
	if err != nil || storedCode == nil || *storedCode != data.Code {
		c.JSON(401, gin.H{"error": "Invalid reset code"})
		return
	}

	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(data.NewPassword)
	if err != nil {
		middlewares.HttpError(c, "Failed to hash password", 500, err)
		return
	}

	if err := h.UserService.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		middlewares.RespondError(c, err)
		return
	}

	utils.DeleteResetCode(ctx, data.Email)
	c.Status(200)
}

// AdminManageUsers allows an admin to list staff accounts
func (h *AuthHandler) AdminManageUsers(c *gin.Context) {
	token, err := extractAccessToken(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if _, err := utils.ValidateToken(token, "Admin"); err != nil {
		c.JSON(401, gin.H{"error": "Invalid access token"})
		return
	}

	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, users)
}

// DecryptRequest represents the expected JSON request body
type DecryptRequest struct {
	Token string `json:"token" binding:"required"`
}

// DecryptHandler decrypts a PASETO token and returns the extracted claims
func (h *AuthHandler) DecryptHandler(c *gin.Context) {
	var req DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	claims, err := utils.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.JSON(200, gin.H{
		"userId": claims.UserID,
		"role":   claims.Role,
		"expiry": claims.Expiry,
	})
}
