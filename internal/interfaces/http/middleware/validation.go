package middleware

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
	"github.com/thankyou/backend/internal/interfaces/http/dto"
)

// SetupValidator makes validation errors report the json or form name of
// the failing field
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	return name
}

// BindingParams converts a query binding error into invalid-params.
// Parse failures of numeric parameters cannot name their field, so they
// are reported under the name "query".
func BindingParams(c *gin.Context, problems *dto.Problems, err error) []dto.InvalidParam {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		params := make([]dto.InvalidParam, 0, len(validationErrors))
		for _, e := range validationErrors {
			params = append(params, dto.InvalidParam{
				Name:   e.Field(),
				Reason: validationReason(c, problems, e),
			})
		}
		return params
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return []dto.InvalidParam{{Name: "query", Reason: problems.Translate(c, i18n.CodeParamInteger)}}
	}
	return []dto.InvalidParam{{Name: "query", Reason: problems.Translate(c, i18n.CodeParamInvalid)}}
}

func validationReason(c *gin.Context, problems *dto.Problems, e validator.FieldError) string {
	switch e.Tag() {
	case "min", "gte":
		return problems.Translate(c, i18n.CodeParamMin, e.Param())
	case "oneof":
		return problems.Translate(c, i18n.CodeParamOneOf, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return problems.Translate(c, i18n.CodeParamInvalid)
	}
}
