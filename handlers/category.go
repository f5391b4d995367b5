package handlers

import (
	"net/http"

	"deals-backend/dtos"
	"deals-backend/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.Categories.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.Categories.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dtos.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.Categories.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dtos.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.Categories.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Categories.DeleteCategory(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeleteResponse{Success: true, Message: "Category deleted successfully"})
}
