package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/resilience-backend/internal/apperr"
)

// ErrorEnvelope is the stable error shape: a taxonomy kind plus a
// human-readable message. Internal detail never crosses this
// boundary.
type ErrorEnvelope struct {
	Error   apperr.Kind `json:"error"`
	Message string      `json:"message"`
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindSemantic:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func RespondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(statusOf(kind), ErrorEnvelope{
		Error:   kind,
		Message: apperr.MessageOf(err),
	})
}

// RespondForbidden renders an authorization denial. Same AUTH_ERROR
// kind as a failed authentication, but 403: the caller is known, just
// not allowed.
func RespondForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorEnvelope{
		Error:   apperr.KindAuth,
		Message: "forbidden",
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
