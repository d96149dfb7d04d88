// internal/handlers/profile/profile_handler.go
package profile

import (
	"errors"
	"net/http"

	"crm-service/internal/domain/profile"
	"crm-service/internal/middleware"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	profileUsecase "crm-service/internal/service/profile"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *profileUsecase.ProfileService
}

func NewProfileHandler(profileService *profileUsecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the caller's profile. Guests get the defaults, so the
// endpoint never 401s on reads.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	result, err := h.profileService.Get(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", result)
}

// UpdateProfile merges the supplied fields into the caller's profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.profileService.Update(c.Request.Context(), middleware.GetIdentity(c), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			response.Unauthorized(c, "sign in to update your profile")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", result)
}
