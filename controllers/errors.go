package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartcity-be/issues"
	"smartcity-be/reference"
)

// respondError maps core errors onto HTTP statuses: validation 400,
// not found 404, permission 403, anything else 500.
func respondError(c *gin.Context, err error) {
	var verr *issues.ValidationError
	var nferr *issues.NotFoundError
	var perr *issues.PermissionError
	var mferr *reference.ErrMissingField

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &mferr):
		c.JSON(http.StatusBadRequest, gin.H{"error": mferr.Error(), "field": mferr.Field})
	case errors.Is(err, reference.ErrUnknownKind):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &nferr):
		c.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusForbidden, gin.H{"error": perr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
