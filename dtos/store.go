package dtos

import (
	"strings"

	"deals-backend/models"
	"deals-backend/utils"
)

type CreateStoreRequest struct {
	Name                 string             `json:"name" binding:"required"`
	Slug                 string             `json:"slug" binding:"required"`
	LogoURL              *string            `json:"logoUrl"`
	WebsiteURL           string             `json:"websiteUrl" binding:"required"`
	AffiliateProgramName *string            `json:"affiliateProgramName"`
	AffiliateBaseURL     *string            `json:"affiliateBaseUrl"`
	Status               models.StoreStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *CreateStoreRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	return requireText(
		[2]string{"name", r.Name},
		[2]string{"slug", r.Slug},
		[2]string{"websiteUrl", r.WebsiteURL},
	)
}

type UpdateStoreRequest struct {
	Name                 Optional[string]             `json:"name"`
	Slug                 Optional[string]             `json:"slug"`
	LogoURL              Optional[string]             `json:"logoUrl"`
	WebsiteURL           Optional[string]             `json:"websiteUrl"`
	AffiliateProgramName Optional[string]             `json:"affiliateProgramName"`
	AffiliateBaseURL     Optional[string]             `json:"affiliateBaseUrl"`
	Status               Optional[models.StoreStatus] `json:"status"`
}

func (r *UpdateStoreRequest) Validate() error {
	required := []struct {
		name  string
		field Optional[string]
	}{
		{"name", r.Name},
		{"slug", r.Slug},
		{"websiteUrl", r.WebsiteURL},
	}
	for _, f := range required {
		if f.field.IsNull() || (f.field.Set && strings.TrimSpace(f.field.Value) == "") {
			return utils.NewValidationError("%s cannot be empty", f.name)
		}
	}
	if r.Status.IsNull() || (r.Status.Set && !r.Status.Value.Valid()) {
		return utils.NewValidationError("Invalid status %q", r.Status.Value)
	}
	return nil
}
