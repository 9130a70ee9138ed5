package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smartcity-be/issues"
	"smartcity-be/middlewares"
)

// AdminController drives the triage panel: full issue listing, status
// transitions, and the dashboard stats.
type AdminController struct {
	svc *issues.Service
	log zerolog.Logger
}

func NewAdminController(svc *issues.Service, log zerolog.Logger) *AdminController {
	return &AdminController{svc: svc, log: log}
}

// Issues lists every issue across all reporters.
func (ac *AdminController) Issues(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := ac.svc.ListAll(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AttachSolution records solution text on a pending issue.
func (ac *AdminController) AttachSolution(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input struct {
		Solution string `json:"solution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ac.svc.AttachSolution(c.Request.Context(), actor, id, input.Solution)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Resolve advances a pending issue to resolved.
func (ac *AdminController) Resolve(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	issue, err := ac.svc.Resolve(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Complete advances a resolved issue to completed.
func (ac *AdminController) Complete(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	issue, err := ac.svc.Complete(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Stats serves the dashboard aggregates.
func (ac *AdminController) Stats(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	stats, err := ac.svc.ComputeStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
