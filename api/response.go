package api

import (
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"invoice-service/core"
	"net/http"
)

// Problem is the JSON body of every error response.
type Problem struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func ErrorResponse(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Problem{
		Status:  status,
		Code:    code,
		Message: message,
		Path:    c.Request.URL.Path,
	})
}

// HandleError translates service errors into HTTP responses.
func HandleError(c *gin.Context, entity string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "idnotfound", entity+" not found")
	case errors.Is(err, core.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, "invalid", err.Error())
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		ErrorResponse(c, http.StatusBadRequest, "reference", "referenced entity does not exist or is still in use")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		ErrorResponse(c, http.StatusConflict, "duplicate", entity+" already exists")
	default:
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "internal", "internal server error")
	}
}
