package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/middleware"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/services"
	"github.com/skillup-edu/school-service/internal/utils"
	"github.com/skillup-edu/school-service/internal/validator"
)

// ClassHandler covers classes and the level catalog. Reads of the catalog go
// through the cache-backed service; every write invalidates it.
type ClassHandler struct {
	BaseHandler
	repos     repositories.Manager
	catalog   services.CatalogService
	auditor   *audit.Logger
	validator *validator.Validator
}

func NewClassHandler(repos repositories.Manager, catalog services.CatalogService, auditor *audit.Logger, v *validator.Validator, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler: NewBaseHandler(logger),
		repos:       repos,
		catalog:     catalog,
		auditor:     auditor,
		validator:   v,
	}
}

// ===== CLASSES =====

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var class models.Class
	if err := c.ShouldBindJSON(&class); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateStruct(&class); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", nil, err.Error())
		return
	}

	id, err := h.repos.Classes().Create(c.Request.Context(), &class)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.recordAudit(c, models.ActionCreate, class.Collection(), id, map[string]any{"classCode": class.ClassCode})
	h.catalog.Invalidate(c.Request.Context())

	class.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "class created", class)
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.repos.Classes().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load class", err)
		return
	}
	if class == nil {
		h.RespondWithError(c, http.StatusNotFound, "class not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "class", class)
}

func (h *ClassHandler) GetClassByCode(c *gin.Context) {
	class, err := h.catalog.GetClassByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to look up class", err)
		return
	}
	if class == nil {
		h.RespondWithError(c, http.StatusNotFound, "class not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "class", class)
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.repos.Classes().Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update class", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, models.Class{}.Collection(), id, updates)
	h.catalog.Invalidate(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "class updated", nil)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")
	if err := h.repos.Classes().Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete class", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, models.Class{}.Collection(), id, nil)
	h.catalog.Invalidate(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "class deleted", nil)
}

func (h *ClassHandler) ListClasses(c *gin.Context) {
	var filters repositories.ClassFilters
	if teacherID := c.Query("teacherId"); teacherID != "" {
		filters.TeacherID = &teacherID
	}
	if active := c.Query("isActive"); active != "" {
		isActive := active == "true"
		filters.IsActive = &isActive
	}

	classes, err := h.repos.Classes().List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list classes", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "classes", classes)
}

// ===== LEVELS =====

func (h *ClassHandler) CreateLevel(c *gin.Context) {
	var level models.Level
	if err := c.ShouldBindJSON(&level); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateStruct(&level); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", nil, err.Error())
		return
	}

	id, err := h.repos.Levels().Create(c.Request.Context(), &level)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to create level", err)
		return
	}
	h.recordAudit(c, models.ActionCreate, level.Collection(), id, map[string]any{"name": level.Name})
	h.catalog.Invalidate(c.Request.Context())

	level.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "level created", level)
}

func (h *ClassHandler) GetLevels(c *gin.Context) {
	levels, err := h.catalog.GetLevels(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list levels", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "levels", levels)
}

func (h *ClassHandler) UpdateLevel(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.repos.Levels().Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update level", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, models.Level{}.Collection(), id, updates)
	h.catalog.Invalidate(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "level updated", nil)
}

func (h *ClassHandler) DeleteLevel(c *gin.Context) {
	id := c.Param("id")
	if err := h.repos.Levels().Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete level", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, models.Level{}.Collection(), id, nil)
	h.catalog.Invalidate(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "level deleted", nil)
}

func (h *ClassHandler) recordAudit(c *gin.Context, action models.ChangeAction, collection, id string, changes map[string]any) {
	actor := middleware.ActorFromContext(c)
	_, err := h.auditor.LogAction(c.Request.Context(), audit.Entry{
		Action:     action,
		Collection: collection,
		DocumentID: id,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Changes:    changes,
	})
	if err != nil {
		h.LogError(c, err, "failed to write audit entry")
	}
}
