package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"feedboard/apierror"
	"feedboard/models"
	"feedboard/store"
	"feedboard/token"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Auth orchestrates password hashing, the token service and the user
// store for signup, login and status operations.
type Auth struct {
	users  store.Users
	tokens *token.Manager
}

func NewAuth(users store.Users, tokens *token.Manager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

func (h *Auth) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierror.FromBinding(err))
		return
	}

	ctx := c.Request.Context()

	_, err := h.users.FindByEmail(ctx, req.Email)
	if err == nil {
		c.Error(apierror.Validation("validation failed, entered data is incorrect", apierror.FieldError{
			Field:   "email",
			Message: "already exists, please use another email to sign up",
		}))
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.Internal("failed to look up email", err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Error(apierror.Internal("failed to hash password", err))
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Status:   models.DefaultStatus,
		Posts:    []primitive.ObjectID{},
	}
	id, err := h.users.Insert(ctx, user)
	if err != nil {
		c.Error(apierror.Internal("failed to create user", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"userId":  id.Hex(),
	})
}

func (h *Auth) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierror.FromBinding(err))
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.Unauthorized("no user found with the entered email"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to look up user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.Error(apierror.Unauthorized("password does not match"))
		return
	}

	signed, err := h.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		c.Error(apierror.Internal("failed to issue token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  signed,
		"userId": user.ID.Hex(),
	})
}

func (h *Auth) GetStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.NotFound("user not found"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to fetch user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": user.Status})
}

func (h *Auth) UpdateStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierror.FromBinding(err))
		return
	}

	ctx := c.Request.Context()

	if _, err := h.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apierror.NotFound("user not found"))
		} else {
			c.Error(apierror.Internal("failed to fetch user", err))
		}
		return
	}

	if err := h.users.UpdateStatus(ctx, userID, req.Status); err != nil {
		c.Error(apierror.Internal("failed to update status", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}
