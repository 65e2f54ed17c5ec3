package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/services"
)

type InsightsHandler struct {
	insightsService services.InsightsService
}

func NewInsightsHandler(insightsService services.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

func (ih *InsightsHandler) Latest(c *gin.Context) {
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
	insights, err := ih.insightsService.Latest(c.Request.Context(), clientID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, insights)
}
