package handlers

import (
	"net/http"

	"deals-backend/dtos"
	"deals-backend/services"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	Stores *services.StoreService
}

func (h *StoreHandler) GetStores(c *gin.Context) {
	stores, err := h.Stores.ListStores(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	store, err := h.Stores.GetStoreBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req dtos.CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.Stores.CreateStore(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dtos.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.Stores.UpdateStore(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Stores.DeleteStore(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeleteResponse{Success: true, Message: "Store deleted successfully"})
}
