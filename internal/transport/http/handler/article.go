package handler

import (
	"github.com/gin-gonic/gin"

	"articles-backend/internal/app"
	"articles-backend/internal/transport/http/middleware"
	"articles-backend/internal/transport/http/response"
)

type ArticleHandler struct {
	articleService *app.ArticleService
}

type CreateArticleRequest struct {
	Title      string `json:"title" binding:"required,max=256"`
	Content    string `json:"content" binding:"required"`
	CategoryID uint   `json:"categoryId" binding:"required"`
}

type UpdateArticleRequest struct {
	Title      *string `json:"title" binding:"omitempty,max=256"`
	Content    *string `json:"content"`
	CategoryID *uint   `json:"categoryId"`
}

func NewArticleHandler(articleService *app.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List supports articleId, userId, title, category, createdAtStart,
// createdAtEnd, sortBy and sortOrder query parameters.
func (h *ArticleHandler) List(c *gin.Context) {
	input, err := listArticlesInput(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	articles, err := h.articleService.List(c.Request.Context(), input)
	if err != nil {
		writeError(c, err, "list articles")
		return
	}
	response.OK(c, articles)
}

func listArticlesInput(c *gin.Context) (app.ListArticlesInput, error) {
	var (
		input app.ListArticlesInput
		err   error
	)
	if input.ArticleID, err = queryUint(c, "articleId"); err != nil {
		return input, err
	}
	if input.UserID, err = queryUint(c, "userId"); err != nil {
		return input, err
	}
	if input.CategoryID, err = queryUint(c, "category"); err != nil {
		return input, err
	}
	if input.CreatedFrom, err = queryTime(c, "createdAtStart"); err != nil {
		return input, err
	}
	if input.CreatedTo, err = queryTime(c, "createdAtEnd"); err != nil {
		return input, err
	}
	input.Title = c.Query("title")
	input.SortBy = c.Query("sortBy")
	input.SortOrder = c.Query("sortOrder")
	return input, nil
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if !response.BindJSON(c, &req) {
		return
	}
	user, _ := middleware.CurrentUser(c)

	article, err := h.articleService.Create(c.Request.Context(), user, app.CreateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(c, err, "create article")
		return
	}
	response.OK(c, article)
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	var req UpdateArticleRequest
	if !response.BindJSON(c, &req) {
		return
	}
	user, _ := middleware.CurrentUser(c)

	article, err := h.articleService.Update(c.Request.Context(), user, id, app.UpdateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(c, err, "update article")
		return
	}
	response.OK(c, article)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, _ := middleware.CurrentUser(c)

	if err := h.articleService.Delete(c.Request.Context(), user, id); err != nil {
		writeError(c, err, "delete article")
		return
	}
	response.Message(c, "Article deleted")
}
