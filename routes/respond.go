package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/types"
)

// respondError maps a domain error to its HTTP status and the standard
// response envelope. InvalidStateError guarantees no mutation occurred.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *types.ValidationError
		permissionErr   *types.PermissionError
		notFoundErr     *types.NotFoundError
		invalidStateErr *types.InvalidStateError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Permission denied",
			"message": permissionErr.Message,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Not found",
			"message": notFoundErr.Error(),
		})
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "Invalid state",
			"message": invalidStateErr.Message,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal error",
			"message": "Something went wrong, please try again",
		})
	}
}
