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

// AssignmentHandler covers assignments and their submissions. Submission
// state transitions go through the grading service; plain CRUD talks to the
// repositories directly.
type AssignmentHandler struct {
	BaseHandler
	repos     repositories.Manager
	grading   services.GradingService
	auditor   *audit.Logger
	validator *validator.Validator
}

func NewAssignmentHandler(repos repositories.Manager, grading services.GradingService, auditor *audit.Logger, v *validator.Validator, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		repos:       repos,
		grading:     grading,
		auditor:     auditor,
		validator:   v,
	}
}

// ===== ASSIGNMENTS =====

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var assignment models.Assignment
	if err := c.ShouldBindJSON(&assignment); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validator.ValidateAssignment(&assignment); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	id, err := h.repos.Assignments().Create(c.Request.Context(), &assignment)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.recordAudit(c, models.ActionCreate, assignment.Collection(), id, map[string]any{
		"title":   assignment.Title,
		"classId": assignment.ClassID,
	})

	assignment.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.repos.Assignments().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load assignment", err)
		return
	}
	if assignment == nil {
		h.RespondWithError(c, http.StatusNotFound, "assignment not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "assignment", assignment)
}

func (h *AssignmentHandler) GetAssignmentsByClass(c *gin.Context) {
	assignments, err := h.repos.Assignments().GetByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list assignments", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "assignments", assignments)
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id := c.Param("id")
	if err := h.repos.Assignments().Update(c.Request.Context(), id, updates); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to update assignment", err)
		return
	}
	h.recordAudit(c, models.ActionUpdate, models.Assignment{}.Collection(), id, updates)
	h.RespondWithSuccess(c, http.StatusOK, "assignment updated", nil)
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")
	if err := h.repos.Assignments().Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete assignment", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, models.Assignment{}.Collection(), id, nil)
	h.RespondWithSuccess(c, http.StatusOK, "assignment deleted", nil)
}

// ===== SUBMISSIONS =====

func (h *AssignmentHandler) SubmitWork(c *gin.Context) {
	var submission models.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id, err := h.grading.SubmitWork(c.Request.Context(), &submission, middleware.ActorFromContext(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	submission.ID = id
	h.RespondWithSuccess(c, http.StatusCreated, "submission received", submission)
}

type gradeRequest struct {
	// Pointer so a legitimate score of 0 passes the required check.
	Score    *float64 `json:"score" binding:"required"`
	Feedback string   `json:"feedback"`
}

func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	err := h.grading.GradeSubmission(c.Request.Context(), c.Param("id"), *req.Score, req.Feedback, middleware.ActorFromContext(c))
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "submission graded", nil)
}

func (h *AssignmentHandler) GetSubmission(c *gin.Context) {
	submission, err := h.repos.Submissions().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to load submission", err)
		return
	}
	if submission == nil {
		h.RespondWithError(c, http.StatusNotFound, "submission not found", nil)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "submission", submission)
}

func (h *AssignmentHandler) GetSubmissionsByAssignment(c *gin.Context) {
	submissions, err := h.repos.Submissions().GetByAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list submissions", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "submissions", submissions)
}

func (h *AssignmentHandler) GetSubmissionsByStudent(c *gin.Context) {
	submissions, err := h.repos.Submissions().GetByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to list submissions", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "submissions", submissions)
}

func (h *AssignmentHandler) DeleteSubmission(c *gin.Context) {
	id := c.Param("id")
	if err := h.repos.Submissions().Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to delete submission", err)
		return
	}
	h.recordAudit(c, models.ActionDelete, models.Submission{}.Collection(), id, nil)
	h.RespondWithSuccess(c, http.StatusOK, "submission deleted", nil)
}

func (h *AssignmentHandler) recordAudit(c *gin.Context, action models.ChangeAction, collection, id string, changes map[string]any) {
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
