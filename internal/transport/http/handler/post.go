package handler

import (
	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

// postDetail always carries the comments list, empty or not.
type postDetail struct {
	*model.Post
	Comments []model.Comment `json:"comments"`
}

func newPostDetail(post *model.Post) postDetail {
	comments := post.Comments
	if comments == nil {
		comments = []model.Comment{}
	}
	return postDetail{Post: post, Comments: comments}
}

type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), user.ID, app.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// List serves GET /api/posts?page=&limit=&published=.
func (h *PostHandler) List(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	posts, err := h.postService.GetAllPosts(c.Request.Context(), listInput(c, page))
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

func listInput(c *gin.Context, page pageQuery) app.ListPostsInput {
	input := app.ListPostsInput{Skip: page.skip(), Take: page.Limit}
	if raw, present := c.GetQuery("published"); present {
		published := raw == "true"
		input.Published = &published
	}
	return input
}

func (h *PostHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id) {
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"post": newPostDetail(post)})
}

func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), c.Param("id"), user.ID, app.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.postService.DeletePost(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
