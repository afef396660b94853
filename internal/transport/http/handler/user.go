package handler

import (
	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
	postService *app.PostService
}

func NewUserHandler(userService *app.UserService, postService *app.PostService) *UserHandler {
	return &UserHandler{
		userService: userService,
		postService: postService,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), page.skip(), page.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"users": users,
		"page":  page.Page,
		"limit": page.Limit,
		"total": len(users),
	})
}

// Posts lists one author's posts. It honours the same published filter as
// the post list.
func (h *UserHandler) Posts(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	authorID := c.Param("id")
	if _, err := h.userService.GetUserByID(c.Request.Context(), authorID); err != nil {
		response.FromError(c, err)
		return
	}

	posts, err := h.postService.GetPostsByAuthor(c.Request.Context(), authorID, listInput(c, page))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"posts": posts,
		"page":  page.Page,
		"limit": page.Limit,
		"total": len(posts),
	})
}
