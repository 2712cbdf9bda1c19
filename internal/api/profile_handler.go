package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/service"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// UpdateNameRequest carries the new display name.
type UpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// AvatarUploadRequest names the content type of the image about to be
// uploaded.
type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// ConfirmAvatarRequest points at the object key the client finished
// uploading to.
type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// ProfileResponse is the DTO for the caller's own account.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *ProfileHandler) mapProfile(c *gin.Context, user *domain.User) ProfileResponse {
	resp := ProfileResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	// A broken avatar link should not take the whole profile down.
	if url, err := h.profileService.AvatarURL(c.Request.Context(), user); err == nil {
		resp.AvatarURL = url
	}
	return resp
}

// --- Handler Methods ---

// GetMe returns the caller's own profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapProfile(c, user))
}

// UpdateName changes the caller's display name.
func (h *ProfileHandler) UpdateName(c *gin.Context) {
	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	user, err := h.profileService.UpdateName(c.Request.Context(), callerID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapProfile(c, user))
}

// RequestAvatarUpload hands the client a presigned PUT URL for its new
// avatar image.
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), callerID, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ConfirmAvatar records the uploaded object key on the caller's profile.
func (h *ProfileHandler) ConfirmAvatar(c *gin.Context) {
	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller")
		return
	}

	user, err := h.profileService.ConfirmAvatar(c.Request.Context(), callerID, req.ObjectKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.mapProfile(c, user))
}
