package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/services"
)

type ClientHabitHandler struct {
	clientHabitService services.ClientHabitService
	deleter            services.SoftDeleteService
}

func NewClientHabitHandler(clientHabitService services.ClientHabitService, deleter services.SoftDeleteService) *ClientHabitHandler {
	return &ClientHabitHandler{clientHabitService: clientHabitService, deleter: deleter}
}

func (ch *ClientHabitHandler) AssignHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	var req services.AssignHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	assignment, err := ch.clientHabitService.AssignHabit(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, assignment)
}

func (ch *ClientHabitHandler) ListClientHabits(c *gin.Context) {
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
	assignments, err := ch.clientHabitService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, assignments)
}

func (ch *ClientHabitHandler) UpdateClientHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientHabitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	var req services.UpdateClientHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	assignment, err := ch.clientHabitService.UpdateClientHabit(c.Request.Context(), clientHabitID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, assignment)
}

func (ch *ClientHabitHandler) DeleteClientHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientHabitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	if err := ch.deleter.DeleteClientHabit(c.Request.Context(), clientHabitID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// ScoreHistory returns the scores recorded against one assignment
// across all weeks. Ownership comes from the assignment itself,
// looked up even after unassignment so the audit trail stays
// reachable.
func (ch *ClientHabitHandler) ScoreHistory(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientHabitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	assignment, err := ch.clientHabitService.GetClientHabitIncludingDeleted(c.Request.Context(), clientHabitID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !authorize(c, actor, authz.ActionReadOwn, &assignment.ClientID) {
		return
	}
	history, err := ch.clientHabitService.ScoreHistory(c.Request.Context(), clientHabitID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, history)
}
