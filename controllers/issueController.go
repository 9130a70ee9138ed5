package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smartcity-be/issues"
	"smartcity-be/middlewares"
	"smartcity-be/models"
)

type IssueController struct {
	svc *issues.Service
	log zerolog.Logger
}

func NewIssueController(svc *issues.Service, log zerolog.Logger) *IssueController {
	return &IssueController{svc: svc, log: log}
}

func issueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return 0, false
	}
	return id, true
}

// Create files a new issue for the authenticated reporter and returns
// it together with its short reference code.
func (ic *IssueController) Create(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input issues.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.svc.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"issue": issue,
		"refId": issue.RefCode(),
	})
}

// Mine lists the reporter's own issues. Rendering the list is what
// marks solution/resolution updates as seen and clears the badge.
func (ic *IssueController) Mine(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := ic.svc.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Badge returns the actor's unread-update count.
func (ic *IssueController) Badge(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	badge, err := ic.svc.ComputeBadge(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badge)
}

// Get returns one issue: admins see any, reporters only their own.
func (ic *IssueController) Get(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	issue, err := ic.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Update lets the reporter edit a still-pending issue.
func (ic *IssueController) Update(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input issues.EditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.svc.Edit(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Rate records the reporter's star rating.
func (ic *IssueController) Rate(c *gin.Context) {
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
		Rating int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.svc.Rate(c.Request.Context(), actor, id, input.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"issue": issue,
		"label": models.RatingLabels[issue.Rating],
	})
}

// SkipRating records an explicit decline to rate.
func (ic *IssueController) SkipRating(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	issue, err := ic.svc.SkipRating(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// Delete removes the issue if the actor owns it or is an admin.
func (ic *IssueController) Delete(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	if err := ic.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}
