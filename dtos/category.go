package dtos

import (
	"strings"

	"deals-backend/utils"
)

type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	ParentID  *uint  `json:"parentId"`
	SortOrder int    `json:"sortOrder"`
}

func (r *CreateCategoryRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	return requireText([2]string{"name", r.Name}, [2]string{"slug", r.Slug})
}

type UpdateCategoryRequest struct {
	Name      Optional[string] `json:"name"`
	Slug      Optional[string] `json:"slug"`
	ParentID  Optional[uint]   `json:"parentId"`
	SortOrder Optional[int]    `json:"sortOrder"`
}

func (r *UpdateCategoryRequest) Validate() error {
	if r.Name.IsNull() || (r.Name.Set && strings.TrimSpace(r.Name.Value) == "") {
		return utils.NewValidationError("name cannot be empty")
	}
	if r.Slug.IsNull() || (r.Slug.Set && strings.TrimSpace(r.Slug.Value) == "") {
		return utils.NewValidationError("slug cannot be empty")
	}
	if r.SortOrder.IsNull() {
		return utils.NewValidationError("sortOrder cannot be null")
	}
	return nil
}
