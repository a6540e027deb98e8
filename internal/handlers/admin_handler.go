package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillup-edu/school-service/internal/audit"
	"github.com/skillup-edu/school-service/internal/middleware"
	"github.com/skillup-edu/school-service/internal/models"
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/services"
	"github.com/skillup-edu/school-service/internal/utils"
	"github.com/skillup-edu/school-service/internal/validator"
)

// AdminHandler covers the staff-facing surface: prospect pipeline, student
// records, audit log queries and grade exports.
type AdminHandler struct {
	BaseHandler
	repos      repositories.Manager
	enrollment services.EnrollmentService
	export     services.ExportService
	auditor    *audit.Logger
	validator  *validator.Validator
}

func NewAdminHandler(
	repos repositories.Manager,
	enrollment services.EnrollmentService,
	export services.ExportService,
	auditor *audit.Logger,
	v *validator.Validator,
	logger utils.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		repos:       repos,
		enrollment:  enrollment,
		export:      export,
		auditor:     auditor,
		validator:   v,
	}
}

// ===== PROSPECTS =====

func (h *AdminHandler) CreateProspect(c *gin.Context) {
	var prospect models.PotentialStudent
	if err := c.ShouldBindJSON(&prospect); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if prospect.Status == "" {
		prospect.Status = models.ProspectPending
	}
	if err := h.validator.ValidateStruct(&prospect); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", nil, err.Error())
		return
	}

	id, err := h.repos.Prospects().Create(c.Request.Context(), &prospect)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to create prospect", err)
		return
	}
	h.recordAudit(c, models.ActionCreate, prospect.Collection(), id, map[string]any{"email": prospect.Email})

	prospect.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "prospect created", prospect)
}

func (h *AdminHandler) GetProspect(c *gin.Context) {
	prospect, err := h.repos.Prospects().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load prospect", err)
		return
	}
	if prospect == nil {
		h.RespondWithError(c, http.StatusNotFound, "prospect not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "prospect", prospect)
}

func (h *AdminHandler) UpdateProspect(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.repos.Prospects().Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update prospect", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, models.PotentialStudent{}.Collection(), id, updates)
	h.RespondWithSuccess(c, http.StatusOK, "prospect updated", nil)
}

func (h *AdminHandler) DeleteProspect(c *gin.Context) {
	id := c.Param("id")
	if err := h.repos.Prospects().Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete prospect", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, models.PotentialStudent{}.Collection(), id, nil)
	h.RespondWithSuccess(c, http.StatusOK, "prospect deleted", nil)
}

func (h *AdminHandler) ListProspects(c *gin.Context) {
	var filters repositories.ProspectFilters
	if status := c.Query("status"); status != "" {
		s := models.ProspectStatus(status)
		filters.Status = &s
	}

	prospects, err := h.repos.Prospects().List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list prospects", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "prospects", prospects)
}

func (h *AdminHandler) ImportProspects(c *gin.Context) {
	var prospects []models.PotentialStudent
	if err := c.ShouldBindJSON(&prospects); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(prospects) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "empty import", nil)
		return
	}

	ids, err := h.enrollment.ImportProspects(c.Request.Context(), prospects, middleware.ActorFromContext(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "prospects imported", gin.H{"ids": ids})
}

type promoteRequest struct {
	Username    string `json:"username" binding:"required"`
	ExternalUID string `json:"externalUid" binding:"required"`
}

func (h *AdminHandler) PromoteProspect(c *gin.Context) {
	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.enrollment.PromoteProspect(c.Request.Context(), c.Param("id"), req.Username, req.ExternalUID, middleware.ActorFromContext(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "prospect enrolled", user)
}

type assignRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	ClassID   string `json:"classId" binding:"required"`
}

func (h *AdminHandler) AssignStudentToClass(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	err := h.enrollment.AssignStudentToClass(c.Request.Context(), req.StudentID, req.ClassID, middleware.ActorFromContext(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "student assigned", nil)
}

// ===== STUDENT RECORDS =====

func (h *AdminHandler) CreateRecord(c *gin.Context) {
	var record models.StudentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateStruct(&record); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", nil, err.Error())
		return
	}

	id, err := h.repos.Records().Create(c.Request.Context(), &record)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.recordAudit(c, models.ActionCreate, record.Collection(), id, map[string]any{
		"studentId": record.StudentID,
		"classId":   record.ClassID,
	})

	record.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "record created", record)
}

func (h *AdminHandler) GetRecord(c *gin.Context) {
	record, err := h.repos.Records().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load record", err)
		return
	}
	if record == nil {
		h.RespondWithError(c, http.StatusNotFound, "record not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "record", record)
}

func (h *AdminHandler) UpdateRecord(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.repos.Records().Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update record", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, models.StudentRecord{}.Collection(), id, updates)
	h.RespondWithSuccess(c, http.StatusOK, "record updated", nil)
}

func (h *AdminHandler) GetRecordsByStudent(c *gin.Context) {
	records, err := h.repos.Records().GetByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list records", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "records", records)
}

func (h *AdminHandler) ListRecords(c *gin.Context) {
	var filters repositories.RecordFilters
	if classID := c.Query("classId"); classID != "" {
		filters.ClassID = &classID
	}
	if semester := c.Query("semester"); semester != "" {
		filters.Semester = &semester
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "year must be an integer", nil)
			return
		}
		filters.Year = &year
	}

	records, err := h.repos.Records().List(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list records", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "records", records)
}

// ===== AUDIT & EXPORT =====

// GetAuditLogs supports date (YYYY-MM-DD, UTC) and actorId query filters.
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	logs, err := h.auditor.GetAuditLogs(c.Request.Context(), audit.LogQuery{
		Date:    c.Query("date"),
		ActorID: c.Query("actorId"),
	})
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to query audit logs", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "audit logs", logs)
}

func (h *AdminHandler) ExportClassGrades(c *gin.Context) {
	classID := c.Param("classId")
	content, err := h.export.ExportClassGrades(c.Request.Context(), classID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=grades-%s.xlsx", classID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *AdminHandler) recordAudit(c *gin.Context, action models.ChangeAction, collection, id string, changes map[string]any) {
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
