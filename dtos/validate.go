package dtos

import (
	"strings"

	"deals-backend/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validate is gin's own engine, so binding tags behave the same whether a
// request arrives through ShouldBindJSON or a service is called directly.
var validate = func() *validator.Validate {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New()
		v.SetTagName("binding")
	}
	v.RegisterTagNameFunc(utils.JSONFieldName)
	return v
}()

func checkStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return utils.NewValidationError("%s", utils.SanitizeValidationError(err))
	}
	return nil
}

// requireText covers what "required" cannot: values that are only whitespace.
func requireText(fields ...[2]string) error {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return utils.NewValidationError("%s is required", f[0])
		}
	}
	return nil
}
