package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smartcity-be/reference"
)

// ReferenceController serves the admin-managed city lists: alerts,
// emergency numbers, tourist places, and bus routes. Reads are
// public; writes are admin-only (enforced on the route group).
type ReferenceController struct {
	repo *reference.Repository
	log  zerolog.Logger
}

func NewReferenceController(repo *reference.Repository, log zerolog.Logger) *ReferenceController {
	return &ReferenceController{repo: repo, log: log}
}

// List returns one reference list in stored order.
func (rc *ReferenceController) List(c *gin.Context) {
	list, err := rc.repo.List(c.Request.Context(), c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create appends one record.
func (rc *ReferenceController) Create(c *gin.Context) {
	var item reference.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := rc.repo.Create(c.Request.Context(), c.Param("kind"), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update replaces one record; unknown ids are a silent no-op.
func (rc *ReferenceController) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var item reference.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := rc.repo.Update(c.Request.Context(), c.Param("kind"), id, item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record updated successfully"})
}

// Delete removes one record; unknown ids are a silent no-op.
func (rc *ReferenceController) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := rc.repo.Delete(c.Request.Context(), c.Param("kind"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}
