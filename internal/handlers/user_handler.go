package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/middleware"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/utils"
	"github.com/skillup-edu/school-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	users     repositories.UserRepository
	auditor   *audit.Logger
	validator *validator.Validator
}

func NewUserHandler(users repositories.UserRepository, auditor *audit.Logger, v *validator.Validator, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		auditor:     auditor,
		validator:   v,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateStruct(&user); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", nil, err.Error())
		return
	}

	id, err := h.users.Create(c.Request.Context(), &user)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}
	h.recordAudit(c, models.ActionCreate, id, map[string]any{"email": user.Email, "role": string(user.Role)})

	user.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "user created", user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}
	if user == nil {
		h.RespondWithError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "user", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.users.Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, id, updates)
	h.RespondWithSuccess(c, http.StatusOK, "user updated", nil)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete user", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, id, nil)
	h.RespondWithSuccess(c, http.StatusOK, "user deleted", nil)
}

// ListUsers accepts optional role and status query filters.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var filters repositories.UserFilters
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := models.UserStatus(status)
		filters.Status = &s
	}

	users, err := h.users.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "users", users)
}

// LookupUser finds a user by email or username; exactly one query parameter
// must be set. Absence is a 404, matching the nil-return contract below.
func (h *UserHandler) LookupUser(c *gin.Context) {
	var (
		user *models.User
		err  error
	)
	switch {
	case c.Query("email") != "":
		user, err = h.users.GetByEmail(c.Request.Context(), c.Query("email"))
	case c.Query("username") != "":
		user, err = h.users.GetByUsername(c.Request.Context(), c.Query("username"))
	default:
		h.RespondWithError(c, http.StatusBadRequest, "email or username query parameter required", nil)
		return
	}

	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "lookup failed", err)
		return
	}
	if user == nil {
		h.RespondWithError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "user", user)
}

func (h *UserHandler) recordAudit(c *gin.Context, action models.ChangeAction, id string, changes map[string]any) {
	actor := middleware.ActorFromContext(c)
	_, err := h.auditor.LogAction(c.Request.Context(), audit.Entry{
		Action:     action,
		Collection: models.User{}.Collection(),
		DocumentID: id,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Changes:    changes,
	})
	if err != nil {
		h.LogError(c, err, "failed to write audit entry")
	}
}
