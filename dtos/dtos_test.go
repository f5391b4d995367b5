package dtos

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"deals-backend/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func TestOptionalTracksAbsentNullAndValue(t *testing.T) {
	var req UpdateDealRequest
	body := `{"title":"New title","couponCode":null,"categoryIds":[]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.Title.Set || !req.Title.Valid || req.Title.Value != "New title" {
		t.Errorf("expected title set, got %+v", req.Title)
	}
	if !req.CouponCode.IsNull() {
		t.Errorf("expected couponCode null, got %+v", req.CouponCode)
	}
	if req.CouponCode.Ptr() != nil {
		t.Error("expected nil pointer for null field")
	}
	if req.Slug.Set {
		t.Error("expected slug absent")
	}
	if !req.CategoryIDs.Set || !req.CategoryIDs.Valid || len(req.CategoryIDs.Value) != 0 {
		t.Errorf("expected empty categoryIds set, got %+v", req.CategoryIDs)
	}
	if req.TagIDs.Set {
		t.Error("expected tagIds absent")
	}
}

func TestOptionalDecimalAcceptsNumbersAndStrings(t *testing.T) {
	var req UpdateDealRequest
	if err := json.Unmarshal([]byte(`{"originalPrice":1000,"dealPrice":"799.50"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !req.OriginalPrice.Value.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected 1000, got %s", req.OriginalPrice.Value)
	}
	if !req.DealPrice.Value.Equal(decimal.RequireFromString("799.5")) {
		t.Errorf("expected 799.5, got %s", req.DealPrice.Value)
	}
	if !req.HasPriceChange() {
		t.Error("expected price change")
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req UpdateDealRequest
	if err := json.Unmarshal([]byte(`{"isFeatured":"yes"}`), &req); err == nil {
		t.Error("expected error for string isFeatured")
	}
}

func validCreateDeal() CreateDealRequest {
	original := decimal.NewFromInt(1000)
	deal := decimal.NewFromInt(800)
	return CreateDealRequest{
		Title:            "Phone",
		Slug:             "phone",
		StoreID:          1,
		ShortDescription: "A phone",
		AffiliateURL:     "https://example.com/aff",
		OriginalPrice:    &original,
		DealPrice:        &deal,
	}
}

func TestCreateDealValidateOK(t *testing.T) {
	req := validCreateDeal()
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestCreateDealValidateListsMissingFields(t *testing.T) {
	req := CreateDealRequest{Title: "Only a title"}
	err := req.Validate()
	if !utils.IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
	want := "slug is required; storeId is required; shortDescription is required; " +
		"affiliateUrl is required; originalPrice is required; dealPrice is required"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if strings.Contains(err.Error(), "title") {
		t.Errorf("did not expect title in %q", err.Error())
	}
}

func TestCreateDealValidateRejectsWhitespace(t *testing.T) {
	req := validCreateDeal()
	req.ShortDescription = "   "
	err := req.Validate()
	if err == nil || err.Error() != "shortDescription is required" {
		t.Errorf("expected blank shortDescription to be rejected, got %v", err)
	}
}

func TestCreateRequestsFailGinBinding(t *testing.T) {
	cases := []struct {
		name string
		req  interface{}
	}{
		{"deal", &CreateDealRequest{}},
		{"store", &CreateStoreRequest{}},
		{"category", &CreateCategoryRequest{}},
		{"tag", &CreateTagRequest{}},
		{"login", &LoginRequest{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := binding.Validator.ValidateStruct(tc.req); err == nil {
				t.Error("expected binding validation to fail on an empty request")
			}
		})
	}
}

func TestCreateDealValidateCurrencyLength(t *testing.T) {
	for _, currency := range []string{"RUPEES", "US", "usd1"} {
		req := validCreateDeal()
		req.Currency = currency
		err := req.Validate()
		if err == nil || err.Error() != "currency must be exactly 3 characters" {
			t.Errorf("currency %q: expected length error, got %v", currency, err)
		}
	}
	req := validCreateDeal()
	req.Currency = "usd"
	if err := req.Validate(); err != nil {
		t.Errorf("expected 3-letter currency to pass, got %v", err)
	}
}

func TestUpdateDealValidateCurrencyLength(t *testing.T) {
	var req UpdateDealRequest
	if err := json.Unmarshal([]byte(`{"currency":"DOLLARS"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := req.Validate(); !utils.IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected validation error for long currency, got %v", err)
	}
}

func TestCreateDealValidatePrices(t *testing.T) {
	req := validCreateDeal()
	zero := decimal.Zero
	req.OriginalPrice = &zero
	if err := req.Validate(); !utils.IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected validation error for zero original price, got %v", err)
	}

	req = validCreateDeal()
	negative := decimal.NewFromInt(-1)
	req.DealPrice = &negative
	if err := req.Validate(); !utils.IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected validation error for negative deal price, got %v", err)
	}
}

func TestCreateDealValidateStatus(t *testing.T) {
	req := validCreateDeal()
	req.Status = "LIVE"
	if err := req.Validate(); !utils.IsStatus(err, http.StatusBadRequest) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestUpdateDealValidateRejectsNullRequired(t *testing.T) {
	cases := []string{
		`{"title":null}`,
		`{"slug":""}`,
		`{"storeId":null}`,
		`{"dealPrice":null}`,
		`{"status":"LIVE"}`,
		`{"isFeatured":null}`,
	}
	for _, body := range cases {
		var req UpdateDealRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("unmarshal %s failed: %v", body, err)
		}
		if err := req.Validate(); !utils.IsStatus(err, http.StatusBadRequest) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestUpdateDealValidateAllowsClearingOptionalFields(t *testing.T) {
	var req UpdateDealRequest
	body := `{"couponCode":null,"expiresAt":null,"productUrl":null,"status":"PUBLISHED"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestStoreRequestsValidate(t *testing.T) {
	create := CreateStoreRequest{Name: "Shop"}
	err := create.Validate()
	if err == nil || err.Error() != "slug is required; websiteUrl is required" {
		t.Errorf("expected missing slug and websiteUrl, got %v", err)
	}

	create = CreateStoreRequest{Name: "Shop", Slug: "shop", WebsiteURL: "https://shop.example", Status: "OPEN"}
	if err := create.Validate(); err == nil {
		t.Error("expected invalid status error")
	}

	var update UpdateStoreRequest
	json.Unmarshal([]byte(`{"websiteUrl":null}`), &update)
	if err := update.Validate(); err == nil {
		t.Error("expected error for null websiteUrl")
	}
}

func TestCategoryAndTagRequestsValidate(t *testing.T) {
	if err := (&CreateCategoryRequest{Name: "Phones"}).Validate(); err == nil {
		t.Error("expected missing slug error")
	}
	if err := (&CreateTagRequest{Slug: "hot"}).Validate(); err == nil {
		t.Error("expected missing name error")
	}

	var update UpdateCategoryRequest
	json.Unmarshal([]byte(`{"parentId":null}`), &update)
	if err := update.Validate(); err != nil {
		t.Errorf("expected clearing parent to be valid, got %v", err)
	}
	if !update.ParentID.IsNull() {
		t.Error("expected parentId null")
	}
}
