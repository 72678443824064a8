package friend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adhamoui/splitpal/internal/user"
	"github.com/adhamoui/splitpal/pkg/middleware"
	"github.com/adhamoui/splitpal/pkg/response"
)

// Handler handles HTTP requests for friend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/link", h.Link)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/balance", h.Balance)

	return r
}

func (h *Handler) friendID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid friend ID")
		return 0, false
	}
	return id, true
}

// Create handles POST /friends
// @Summary      Add a friend
// @Description  Add a friend, optionally linked to an existing user; unlinked friends are dummies
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        request body CreateFriendRequest true "Friend creation request"
// @Success      201 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	f, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.BadRequest(w, "Linked user does not exist")
			return
		}
		response.InternalError(w, "Failed to create friend")
		return
	}

	response.JSON(w, http.StatusCreated, f.ToResponse())
}

// List handles GET /friends
// @Summary      List friends
// @Description  Get the user's friends, self record excluded
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FriendResponse}
// @Security     BearerAuth
// @Router       /friends [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	friends, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		response.InternalError(w, "Failed to list friends")
		return
	}

	responses := make([]*FriendResponse, len(friends))
	for i, f := range friends {
		responses[i] = f.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /friends/{id}
// @Summary      Get friend by ID
// @Tags         friends
// @Produce      json
// @Param        id path int true "Friend ID"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.friendID(w, r)
	if !ok {
		return
	}
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	f, err := h.service.GetByID(r.Context(), id, ownerID)
	if err != nil {
		h.writeError(w, err, "Failed to get friend")
		return
	}

	response.JSON(w, http.StatusOK, f.ToResponse())
}

// Update handles PUT /friends/{id}
// @Summary      Update a friend
// @Description  Update a friend's contact fields
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        id path int true "Friend ID"
// @Param        request body UpdateFriendRequest true "Friend update request"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.friendID(w, r)
	if !ok {
		return
	}
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	f, err := h.service.Update(r.Context(), id, ownerID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update friend")
		return
	}

	response.JSON(w, http.StatusOK, f.ToResponse())
}

// Link handles POST /friends/{id}/link
// @Summary      Link a friend to a user
// @Description  Promote a dummy friend to a linked one; linking is permanent
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        id path int true "Friend ID"
// @Param        request body LinkFriendRequest true "Link request"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends/{id}/link [post]
func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	id, ok := h.friendID(w, r)
	if !ok {
		return
	}
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req LinkFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	f, err := h.service.Link(r.Context(), id, ownerID, &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyLinked) {
			response.Conflict(w, err.Error())
			return
		}
		if errors.Is(err, user.ErrUserNotFound) {
			response.BadRequest(w, "Linked user does not exist")
			return
		}
		h.writeError(w, err, "Failed to link friend")
		return
	}

	response.JSON(w, http.StatusOK, f.ToResponse())
}

// Delete handles DELETE /friends/{id}
// @Summary      Delete a friend
// @Description  Delete a friend without any recorded splits
// @Tags         friends
// @Produce      json
// @Param        id path int true "Friend ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.friendID(w, r)
	if !ok {
		return
	}
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, ErrCannotDeleteFriend) || errors.Is(err, ErrCannotDeleteSelf) {
			response.Conflict(w, err.Error())
			return
		}
		h.writeError(w, err, "Failed to delete friend")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend deleted successfully"})
}

// Balance handles GET /friends/{id}/balance
// @Summary      Get balance with a friend
// @Description  Aggregate who-owes-whom in the user's default currency with a per-currency breakdown
// @Tags         friends
// @Produce      json
// @Param        id path int true "Friend ID"
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /friends/{id}/balance [get]
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.friendID(w, r)
	if !ok {
		return
	}
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	balance, err := h.service.Balance(r.Context(), id, ownerID)
	if err != nil {
		h.writeError(w, err, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, balance)
}

// writeError maps the common service errors to HTTP responses
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrFriendNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
