package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed
// so field validation reports what is missing.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return false
	}
	return true
}

func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, app.ErrAuthRequired)
		return nil, false
	}
	return user, true
}

type pageQuery struct {
	Page  int
	Limit int
}

func (p pageQuery) skip() int {
	return (p.Page - 1) * p.Limit
}

// parsePage reads page and limit, both defaulting and required to be >= 1.
// A limit above maxLimit is clamped before the offset is derived from it.
func parsePage(c *gin.Context) (pageQuery, bool) {
	page, errPage := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if errPage != nil || errLimit != nil || page < 1 || limit < 1 {
		response.FromError(c, app.ErrInvalidPagination)
		return pageQuery{}, false
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return pageQuery{Page: page, Limit: limit}, true
}

// validID accepts only the canonical dashed UUID form.
func validID(c *gin.Context, id string) bool {
	if len(id) != 36 || uuid.Validate(id) != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return false
	}
	return true
}
