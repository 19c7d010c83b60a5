package api

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// PathID parses the :id path parameter, answering 400 when it is not a positive integer.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "idinvalid", "invalid id")
		return 0, false
	}
	return id, true
}

// CheckBodyID enforces that the id of the body matches the path id.
func CheckBodyID(c *gin.Context, pathID, bodyID int64) bool {
	if bodyID == 0 {
		ErrorResponse(c, http.StatusBadRequest, "idnull", "invalid id")
		return false
	}
	if bodyID != pathID {
		ErrorResponse(c, http.StatusBadRequest, "idinvalid", "invalid id")
		return false
	}
	return true
}
