// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"crm-service/internal/domain/auth"
	"crm-service/internal/domain/identity"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/response"
	authUsecase "crm-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ========== Registration ==========

// Register handles user registration (public endpoint)
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	// Set IP and User-Agent
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	authResp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("registration failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.Error(c, http.StatusBadRequest, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", authResp)
}

// ========== Login ==========

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	// Set IP and User-Agent
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	authResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("login failed",
			zap.String("email", req.Email),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.Error(c, http.StatusUnauthorized, "login failed", err)
		return
	}

	h.logger.Info("user logged in",
		zap.String("identity_key", authResp.IdentityKey),
		zap.String("email", authResp.Email),
	)

	response.Success(c, http.StatusOK, "login successful", authResp)
}

// ========== Logout ==========

// Logout handles user logout (requires auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	id := middleware.GetIdentity(c)
	jti, _ := middleware.GetJTI(c)

	if err := h.authService.Logout(c.Request.Context(), id.Key, jti); err != nil {
		h.logger.Error("logout failed",
			zap.String("identity_key", id.Key),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// LogoutAll handles logging out all sessions (requires auth)
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	id := middleware.GetIdentity(c)

	if err := h.authService.LogoutAll(c.Request.Context(), id.Key); err != nil {
		response.Error(c, http.StatusInternalServerError, "logout all failed", err)
		return
	}

	response.Success(c, http.StatusOK, "all sessions logged out", nil)
}

// ========== Account ==========

// GetMe returns the signed-in account (requires auth)
func (h *AuthHandler) GetMe(c *gin.Context) {
	id := middleware.GetIdentity(c)

	account, err := h.authService.GetAccount(c.Request.Context(), id.Key)
	if err != nil {
		response.Error(c, http.StatusNotFound, "account not found", err)
		return
	}

	response.Success(c, http.StatusOK, "account retrieved", map[string]interface{}{
		"identity_key": account.ID,
		"email":        account.Email,
		"display_name": account.DisplayName.String,
		"roles":        []string(account.Roles),
		"created_at":   account.CreatedAt,
	})
}

// ========== Auth Mode ==========

// GetAuthMode returns the persisted guest/user flag for a device. The
// device id comes from the X-Device-ID header or the device_id query
// param; unknown devices are guests.
func (h *AuthHandler) GetAuthMode(c *gin.Context) {
	deviceID := extractDeviceID(c)
	if deviceID == "" {
		response.Error(c, http.StatusBadRequest, "device id is required", nil)
		return
	}

	mode, err := h.authService.GetAuthMode(c.Request.Context(), deviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read auth mode", err)
		return
	}

	response.Success(c, http.StatusOK, "auth mode retrieved", map[string]interface{}{
		"mode": mode,
	})
}

// SetAuthMode persists the guest/user flag for a device.
func (h *AuthHandler) SetAuthMode(c *gin.Context) {
	deviceID := extractDeviceID(c)
	if deviceID == "" {
		response.Error(c, http.StatusBadRequest, "device id is required", nil)
		return
	}

	var req auth.AuthModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.SetAuthMode(c.Request.Context(), deviceID, identity.Mode(req.Mode)); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to persist auth mode", err)
		return
	}

	response.Success(c, http.StatusOK, "auth mode updated", map[string]interface{}{
		"mode": req.Mode,
	})
}

func extractDeviceID(c *gin.Context) string {
	if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
		return deviceID
	}
	return c.Query("device_id")
}
