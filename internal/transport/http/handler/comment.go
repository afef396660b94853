package handler

import (
	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
}

type CommentRequest struct {
	Content string `json:"content"`
}

func NewCommentHandler(commentService *app.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.commentService.GetCommentsByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"comments": comments})
}

func (h *CommentHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.Param("id"), user.ID, req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("id"), user.ID, req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.commentService.DeleteComment(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
