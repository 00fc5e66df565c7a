package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(code, field, message string) *Response {
	return &Response{
		Status: "error",
		Error:  &ErrorBody{Code: code, Field: field, Message: message},
	}
}

// Error writes err as a JSON error response, mapping the error taxonomy
// to HTTP status codes. Unrecognized errors become 500s with a generic
// message so internals never leak to callers.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(string(appErr.Kind), appErr.Field, appErr.Message))
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, validationResponse(verrs))
		return
	}

	c.Error(err)
	c.JSON(http.StatusInternalServerError,
		NewErrorResponse(string(apperrors.KindInternal), "", "internal server error"))
}

// BindJSON binds the request body into dst, writing the error response
// itself on failure. Callers return immediately when it reports false.
// Unknown keys are rejected rather than dropped, so a payload naming a
// field outside the request surface fails instead of being ignored.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, validationResponse(verrs))
			return false
		}
		if field, ok := unknownField(err); ok {
			c.JSON(http.StatusBadRequest,
				NewErrorResponse(string(apperrors.KindValidation), field, "unknown field"))
			return false
		}
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(string(apperrors.KindValidation), "", "invalid request body: "+err.Error()))
		return false
	}
	return true
}

// unknownField extracts the offending key from the decoder's
// unknown-field error.
func unknownField(err error) (string, bool) {
	const marker = `json: unknown field "`
	msg := err.Error()
	start := strings.Index(msg, marker)
	if start < 0 {
		return "", false
	}
	rest := msg[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func validationResponse(verrs validator.ValidationErrors) *Response {
	first := verrs[0]
	field := strings.ToLower(first.Field())

	var message string
	switch first.Tag() {
	case "required":
		message = "field is required"
	case "datetime":
		message = "invalid date/time format"
	case "oneof":
		message = "value must be one of: " + first.Param()
	case "gt":
		message = "value must be greater than " + first.Param()
	case "gte":
		message = "value must be at least " + first.Param()
	default:
		message = "invalid value"
	}

	return NewErrorResponse(string(apperrors.KindValidation), field, message)
}
