package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/services"
)

type ClientHandler struct {
	userService services.UserService
	deleter     services.SoftDeleteService
}

func NewClientHandler(userService services.UserService, deleter services.SoftDeleteService) *ClientHandler {
	return &ClientHandler{userService: userService, deleter: deleter}
}

func (ch *ClientHandler) CreateClient(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteAny, nil) {
		return
	}
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	client, err := ch.userService.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, client)
}

func (ch *ClientHandler) GetClient(c *gin.Context) {
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
	client, err := ch.userService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) UpdateClient(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionWriteOwn, &clientID) {
		return
	}
	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperr.Validation("body", "invalid request body"))
		return
	}
	client, err := ch.userService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, client)
}

func (ch *ClientHandler) ListClients(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionReadAny, nil) {
		return
	}
	limit, offset, ok := parsePageQuery(c)
	if !ok {
		return
	}
	clients, err := ch.userService.ListClients(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, clients)
}

func (ch *ClientHandler) DeleteClient(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !authorize(c, actor, authz.ActionAdmin, nil) {
		return
	}
	if err := ch.deleter.DeleteClient(c.Request.Context(), clientID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func parsePageQuery(c *gin.Context) (int, int, bool) {
	limit := 0
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, apperr.Validation("limit", "limit must be an integer"))
			return 0, 0, false
		}
		limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, apperr.Validation("offset", "offset must be an integer"))
			return 0, 0, false
		}
		offset = v
	}
	return limit, offset, true
}
