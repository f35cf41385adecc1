package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// reply sends the {message, success} shape used by every business outcome
func reply(c *gin.Context, status int, success bool, message string) {
	c.JSON(status, gin.H{"message": message, "success": success})
}

// storeFailure logs an unexpected persistence error and answers 500
func storeFailure(c *gin.Context, err error, action string) {
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(), // Route that failed
		"error": err.Error(),  // Error message
	}).Error(action)
	reply(c, http.StatusInternalServerError, false, "There was a server error")
}

// pageParams reads page and page_size the same way on every list endpoint
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}

// totalPages rounds up
func totalPages(total int64, pageSize int) int {
	return (int(total) + pageSize - 1) / pageSize
}

// idParam parses the :id path parameter
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		reply(c, http.StatusBadRequest, false, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
