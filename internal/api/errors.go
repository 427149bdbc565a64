package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"weekly-agenda/internal/service"
)

// writeError maps service errors to status codes and JSON bodies.
func writeError(c *gin.Context, err error) {
	var (
		verr     *service.ValidationError
		conflict *service.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "errors": verr.Fields})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"message":         "Task conflicts with an existing task",
			"conflictingTask": conflict.Task,
		})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
	default:
		log.Printf("[error] %s %s id=%s: %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
