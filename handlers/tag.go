package handlers

import (
	"net/http"

	"deals-backend/dtos"
	"deals-backend/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	Tags *services.TagService
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.Tags.ListTags(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.Tags.GetTagBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dtos.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.Tags.CreateTag(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dtos.UpdateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.Tags.UpdateTag(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Tags.DeleteTag(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeleteResponse{Success: true, Message: "Tag deleted successfully"})
}
