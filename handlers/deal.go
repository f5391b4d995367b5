package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"deals-backend/dtos"
	"deals-backend/middleware"
	"deals-backend/services"
	"deals-backend/utils"

	"github.com/gin-gonic/gin"
)

type DealHandler struct {
	Deals *services.DealService
}

func bindDealsQuery(c *gin.Context) (dtos.DealsQuery, bool) {
	var q dtos.DealsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(utils.NewValidationError("Invalid query parameters"))
		return q, false
	}
	return q, true
}

// GetDeals lists published deals only; a status parameter is ignored.
func (h *DealHandler) GetDeals(c *gin.Context) {
	q, ok := bindDealsQuery(c)
	if !ok {
		return
	}

	page, err := h.Deals.ListPublishedDeals(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetDeal resolves an all-digit segment as an id and anything else as a slug.
// Published status is not required, matching direct links to archived deals.
func (h *DealHandler) GetDeal(c *gin.Context) {
	lookup := services.ParseDealLookup(c.Param("idOrSlug"))

	deal, err := h.Deals.GetDeal(c.Request.Context(), lookup)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, deal)
}

// RecordClick stores the click and hands back the affiliate URL for the client to redirect to.
func (h *DealHandler) RecordClick(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("idOrSlug"), 10, 64)
	if err != nil || id == 0 {
		c.Error(utils.NewNotFoundError("Deal"))
		return
	}

	var req dtos.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(utils.NewValidationError("Invalid request body"))
		return
	}

	meta := services.ClickMetadata{
		IPAddress: optionalString(c.ClientIP()),
		UserAgent: optionalString(c.Request.UserAgent()),
		Referrer:  optionalString(c.Request.Referer()),
		SubID:     req.SubID,
	}

	affiliateURL, err := h.Deals.RecordClick(c.Request.Context(), uint(id), meta)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ClickResponse{Success: true, AffiliateURL: affiliateURL})
}

// AdminGetDeals lists deals of any status; status narrows the result when given.
func (h *DealHandler) AdminGetDeals(c *gin.Context) {
	q, ok := bindDealsQuery(c)
	if !ok {
		return
	}

	page, err := h.Deals.ListDeals(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *DealHandler) CreateDeal(c *gin.Context) {
	claims, ok := middleware.CurrentAdmin(c)
	if !ok {
		c.Error(utils.NewAuthError(http.StatusUnauthorized, "No token provided"))
		return
	}

	var req dtos.CreateDealRequest
	if !bindJSON(c, &req) {
		return
	}

	deal, err := h.Deals.CreateDeal(c.Request.Context(), claims.AdminID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) UpdateDeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dtos.UpdateDealRequest
	if !bindJSON(c, &req) {
		return
	}

	deal, err := h.Deals.UpdateDeal(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, deal)
}

// DeleteDeal archives the deal; the row, its associations and its clicks remain.
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Deals.SoftDeleteDeal(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.DeleteResponse{Success: true, Message: "Deal archived successfully"})
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
