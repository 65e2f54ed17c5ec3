package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/resilience-backend/internal/apperr"
	"github.com/yungbote/resilience-backend/internal/authz"
	"github.com/yungbote/resilience-backend/internal/http/response"
	"github.com/yungbote/resilience-backend/internal/requestdata"
)

// actorFrom rebuilds the authorization actor from the authenticated
// request context. Missing request data means the auth middleware did
// not run; treat it as unauthenticated.
func actorFrom(c *gin.Context) (authz.Actor, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, response.ErrorEnvelope{
			Error:   apperr.KindAuth,
			Message: "not authenticated",
		})
		return authz.Actor{}, false
	}
	return authz.Actor{ID: rd.UserID, Role: rd.Role}, true
}

// authorize runs the access decision and renders the denial. Handlers
// call it before touching any service.
func authorize(c *gin.Context, actor authz.Actor, action authz.Action, ownerID *uuid.UUID) bool {
	if authz.Evaluate(actor, action, ownerID) != authz.Permit {
		response.RespondForbidden(c)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, apperr.Validation(name, "%s must be a valid uuid", name))
		return uuid.Nil, false
	}
	return id, true
}
