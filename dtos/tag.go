package dtos

import (
	"strings"

	"deals-backend/utils"
)

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (r *CreateTagRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	return requireText([2]string{"name", r.Name}, [2]string{"slug", r.Slug})
}

type UpdateTagRequest struct {
	Name Optional[string] `json:"name"`
	Slug Optional[string] `json:"slug"`
}

func (r *UpdateTagRequest) Validate() error {
	if r.Name.IsNull() || (r.Name.Set && strings.TrimSpace(r.Name.Value) == "") {
		return utils.NewValidationError("name cannot be empty")
	}
	if r.Slug.IsNull() || (r.Slug.Set && strings.TrimSpace(r.Slug.Value) == "") {
		return utils.NewValidationError("slug cannot be empty")
	}
	return nil
}
