package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindJSON binds the request body into out. On failure it writes a 400
// validation body and returns false.
func BindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorBody(err, out))
		return false
	}
	return true
}

func bindErrorBody(err error, out interface{}) ErrorBody {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		rootType := baseStructType(out)
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Field: jsonFieldName(rootType, fe.StructField()),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		return ErrorBody{Error: "invalid request body", Code: KindValidation, Fields: fields}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ErrorBody{
			Error: "invalid request body",
			Code:  KindValidation,
			Fields: []FieldError{{
				Field: typeErr.Field,
				Rule:  "type",
				Param: typeErr.Type.String(),
			}},
		}
	}

	return ErrorBody{Error: "invalid request body", Code: KindValidation}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

func jsonFieldName(rootType reflect.Type, structField string) string {
	if rootType == nil {
		return structField
	}
	sf, ok := rootType.FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return structField
	}
	return name
}
