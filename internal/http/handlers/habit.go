package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/services"
)

type HabitHandler struct {
	habitService services.HabitService
	deleter      services.SoftDeleteService
}

func NewHabitHandler(habitService services.HabitService, deleter services.SoftDeleteService) *HabitHandler {
	return &HabitHandler{habitService: habitService, deleter: deleter}
}

func (hh *HabitHandler) CreateHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	var req services.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	habit, err := hh.habitService.CreateHabit(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, habit)
}

func (hh *HabitHandler) GetHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	// The master list is shared: reading it is an own-scoped action
	// against yourself, which every authenticated role passes.
	if !authorize(c, actor, authz.ActionReadOwn, &actor.ID) {
		return
	}
	habit, err := hh.habitService.GetHabit(c.Request.Context(), habitID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, habit)
}

func (hh *HabitHandler) UpdateHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	var req services.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	habit, err := hh.habitService.UpdateHabit(c.Request.Context(), habitID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, habit)
}

func (hh *HabitHandler) ListHabits(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionReadOwn, &actor.ID) {
		return
	}
	limit, offset, ok := parsePageQuery(c)
	if !ok {
		return
	}
	habits, err := hh.habitService.ListHabits(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, habits)
}

func (hh *HabitHandler) DeleteHabit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	if err := hh.deleter.DeleteHabit(c.Request.Context(), habitID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
