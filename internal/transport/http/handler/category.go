package handler

import (
	"github.com/gin-gonic/gin"

	"articles-backend/internal/app"
	"articles-backend/internal/transport/http/middleware"
	"articles-backend/internal/transport/http/response"
)

type CategoryHandler struct {
	categoryService *app.CategoryService
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=128"`
}

func NewCategoryHandler(categoryService *app.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "list categories")
		return
	}
	response.OK(c, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}
	user, _ := middleware.CurrentUser(c)

	category, err := h.categoryService.Create(c.Request.Context(), app.CreateCategoryInput{
		UserID: user.ID,
		Name:   req.Name,
	})
	if err != nil {
		writeError(c, err, "create category")
		return
	}
	response.OK(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	var req UpdateCategoryRequest
	if !response.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, app.UpdateCategoryInput{
		Name: req.Name,
	})
	if err != nil {
		writeError(c, err, "update category")
		return
	}
	response.OK(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "delete category")
		return
	}
	response.Message(c, "Category deleted")
}
