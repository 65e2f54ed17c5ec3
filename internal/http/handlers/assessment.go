package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/services"
)

const dateLayout = "2006-01-02"

type AssessmentHandler struct {
	assessmentService services.AssessmentService
	deleter           services.SoftDeleteService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, deleter services.SoftDeleteService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService, deleter: deleter}
}

func (ah *AssessmentHandler) CreateAssessment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req struct {
		ClientID       uuid.UUID `json:"client_id"`
		WeekStart      string    `json:"week_start_date"`
		OverallComment *string   `json:"overall_comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &req.ClientID) {
		return
	}
	weekStart, err := time.Parse(dateLayout, req.WeekStart)
	if err != nil {
		response.RespondError(c, apperr.Validation("week_start_date", "week_start_date must be formatted as %s", dateLayout))
		return
	}
	assessment, err := ah.assessmentService.CreateAssessment(c.Request.Context(), services.CreateAssessmentRequest{
		ClientID:       req.ClientID,
		WeekStart:      weekStart,
		OverallComment: req.OverallComment,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, assessment)
}

func (ah *AssessmentHandler) GetAssessment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionReadOwn, &assessment.ClientID) {
		return
	}
	response.RespondOK(c, assessment)
}

func (ah *AssessmentHandler) UpdateComment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &assessment.ClientID) {
		return
	}
	var req struct {
		OverallComment *string `json:"overall_comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	updated, err := ah.assessmentService.UpdateComment(c.Request.Context(), assessmentID, req.OverallComment)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (ah *AssessmentHandler) ListAssessments(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionReadOwn, &clientID) {
		return
	}
	limit, offset, ok := parsePageQuery(c)
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	assessments, err := ah.assessmentService.ListAssessments(c.Request.Context(), services.ListAssessmentsRequest{
		ClientID: clientID,
		From:     from,
		To:       to,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, assessments)
}

func (ah *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &assessment.ClientID) {
		return
	}
	if err := ah.deleter.DeleteAssessment(c.Request.Context(), assessmentID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ah *AssessmentHandler) AddScore(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &assessment.ClientID) {
		return
	}
	var req services.AddScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	score, err := ah.assessmentService.AddScore(c.Request.Context(), assessmentID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, score)
}

func (ah *AssessmentHandler) ListScores(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	assessmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionReadOwn, &assessment.ClientID) {
		return
	}
	scores, err := ah.assessmentService.ListScores(c.Request.Context(), assessmentID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, scores)
}

func (ah *AssessmentHandler) UpdateScore(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	scoreID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	owner, ok := ah.scoreOwner(c, scoreID)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &owner) {
		return
	}
	var req services.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	score, err := ah.assessmentService.UpdateScore(c.Request.Context(), scoreID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, score)
}

func (ah *AssessmentHandler) DeleteScore(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	scoreID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	owner, ok := ah.scoreOwner(c, scoreID)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &owner) {
		return
	}
	if err := ah.deleter.DeleteScore(c.Request.Context(), scoreID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// scoreOwner resolves the client that owns a score through its parent
// assessment, rendering the error itself on failure.
func (ah *AssessmentHandler) scoreOwner(c *gin.Context, scoreID uuid.UUID) (uuid.UUID, bool) {
	score, err := ah.assessmentService.GetScore(c.Request.Context(), scoreID)
	if err != nil {
		response.RespondError(c, err)
		return uuid.Nil, false
	}
	assessment, err := ah.assessmentService.GetAssessment(c.Request.Context(), score.AssessmentID)
	if err != nil {
		response.RespondError(c, err)
		return uuid.Nil, false
	}
	return assessment.ClientID, true
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		response.RespondError(c, apperr.Validation(name, "%s must be formatted as %s", name, dateLayout))
		return nil, false
	}
	return &t, true
}
