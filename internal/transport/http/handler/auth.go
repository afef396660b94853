package handler

import (
	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

const activityPageSize = 50

type AuthHandler struct {
	authService *app.AuthService
	userService *app.UserService
	activity    *app.ActivityLog
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func NewAuthHandler(authService *app.AuthService, userService *app.UserService, activity *app.ActivityLog) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		activity:    activity,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "User logged in successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	response.OK(c, gin.H{
		"message": "User profile fetched successfully",
		"user":    user,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.userService.UpdateUser(c.Request.Context(), user.ID, app.UpdateUserInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

func (h *AuthHandler) DeleteProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.userService.DeleteUser(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AuthHandler) Activity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	activities, err := h.activity.ListForActor(c.Request.Context(), user.ID, activityPageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"activities": activities})
}
