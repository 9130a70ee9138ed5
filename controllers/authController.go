package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"smartcity-be/config"
	"smartcity-be/middlewares"
	"smartcity-be/models"
	"smartcity-be/users"
	authUtils "smartcity-be/utils"
)

type AuthController struct {
	users *users.Repository
	cfg   config.Config
	log   zerolog.Logger
}

func NewAuthController(repo *users.Repository, cfg config.Config, log zerolog.Logger) *AuthController {
	return &AuthController{users: repo, cfg: cfg, log: log}
}

// Register handles account creation. Emails listed in ADMIN_EMAILS
// are seeded with the admin role; everyone else is a regular user.
func (a *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"omitempty,len=10,numeric"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.RoleUser
	for _, admin := range a.cfg.AdminEmails {
		if strings.EqualFold(admin, input.Email) {
			role = models.RoleAdmin
		}
	}

	user, err := a.users.Register(c.Request.Context(), models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
			return
		}
		a.log.Error().Err(err).Msg("register user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

// Login validates credentials and returns a role-bearing JWT.
func (a *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, found, err := a.users.FindByEmail(c.Request.Context(), input.Email)
	if err != nil {
		a.log.Error().Err(err).Msg("login lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if !found || !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateToken(a.cfg.JWTSecret, user.Actor())
	if err != nil {
		a.log.Error().Err(err).Msg("generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Me returns the authenticated account.
func (a *AuthController) Me(c *gin.Context) {
	actor, ok := middlewares.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, found, err := a.users.FindByName(c.Request.Context(), actor.Name)
	if err != nil {
		a.log.Error().Err(err).Msg("load account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

// Users lists every account for the admin panel.
func (a *AuthController) Users(c *gin.Context) {
	list, err := a.users.All(c.Request.Context())
	if err != nil {
		a.log.Error().Err(err).Msg("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, list)
}
