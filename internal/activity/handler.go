package activity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adhamoui/splitpal/pkg/middleware"
	"github.com/adhamoui/splitpal/pkg/response"
)

// Handler handles HTTP requests for activity feeds
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/friends/{id}", h.FriendFeed)

	return r
}

// FriendFeed handles GET /activity/friends/{id}
// @Summary      Get a friend's activity feed
// @Description  Merged transaction and settlement history with a friend, newest first, with the recent/older partition marked
// @Tags         activity
// @Produce      json
// @Param        id path int true "Friend ID"
// @Success      200 {object} response.APIResponse{data=FeedResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /activity/friends/{id} [get]
func (h *Handler) FriendFeed(w http.ResponseWriter, r *http.Request) {
	friendID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid friend ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	feed, err := h.service.FriendFeed(r.Context(), userID, friendID)
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotOwner) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build activity feed")
		return
	}

	response.JSON(w, http.StatusOK, feed)
}
