package handlers

import (
	"errors"
	"net/http"

	"github.com/dom/aura-backend/internal/api/middleware"
	"github.com/dom/aura-backend/internal/api/respond"
	"github.com/dom/aura-backend/internal/domain"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            *logger.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log.With("handler", "ProfileHandler")}
}

// UpsertProfileRequest is the body of POST /api/profile. Omitted and null
// fields are left as they are.
type UpsertProfileRequest struct {
	Name       *string  `json:"name"`
	Age        *int     `json:"age"`
	Gender     *string  `json:"gender"`
	City       *string  `json:"city"`
	Lifestyle  *string  `json:"lifestyle"`
	VataScore  *float64 `json:"vata_score"`
	PittaScore *float64 `json:"pitta_score"`
	KaphaScore *float64 `json:"kapha_score"`
}

type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// GetProfile returns the caller's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respond.Error(w, http.StatusNotFound, "Profile not found")
			return
		}
		h.log.Error("get profile failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	respond.JSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

// UpsertProfile creates or merges the caller's profile
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpsertProfileRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpsertProfile(r.Context(), userID, service.UpsertProfileInput{
		Name:       req.Name,
		Age:        req.Age,
		Gender:     req.Gender,
		City:       req.City,
		Lifestyle:  req.Lifestyle,
		VataScore:  req.VataScore,
		PittaScore: req.PittaScore,
		KaphaScore: req.KaphaScore,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("save profile failed", "user_id", userID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	respond.JSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}
