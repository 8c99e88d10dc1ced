package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	mw "github.com/bhumilabs/bhumi/internal/api/middleware"
	"github.com/bhumilabs/bhumi/internal/api/response"
	"github.com/bhumilabs/bhumi/internal/store"
	"github.com/bhumilabs/bhumi/pkg/models"
)

// ProfileService defines the profile operations the handlers depend on.
type ProfileService interface {
	CurrentUser(ctx context.Context, email string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}

// NewGetProfileHandler returns an http.HandlerFunc for GET /api/v1/profile.
func NewGetProfileHandler(svc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := mw.GetUserEmail(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		user, err := svc.CurrentUser(r.Context(), email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Profile not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.JSON(w, user)
	}
}

// NewUpdateProfileHandler returns an http.HandlerFunc for PUT /api/v1/profile.
// The email is always the session's; the body cannot redirect the write to
// another account.
func NewUpdateProfileHandler(svc ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := mw.GetUserEmail(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		var profile models.UserProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		profile.Email = email

		updated, err := svc.UpdateProfile(r.Context(), &profile)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Profile not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.JSON(w, updated)
	}
}
