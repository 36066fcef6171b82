package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the machine-readable error class carried in every error body.
type Kind string

const (
	KindUnauthenticated    Kind = "unauthenticated"
	KindInvalidToken       Kind = "invalid_token"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation_error"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInternal           Kind = "internal_error"
)

type ErrorBody struct {
	Error  string       `json:"error"`
	Code   Kind         `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func Error(c *gin.Context, httpStatus int, code Kind, message string) {
	c.JSON(httpStatus, ErrorBody{
		Error: message,
		Code:  code,
	})
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, httpStatus int, code Kind, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{
		Error: message,
		Code:  code,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, KindValidation, message)
}

func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, KindInternal, "internal server error")
}
