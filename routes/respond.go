package routes

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
)

var registerJSONNames sync.Once

// useJSONFieldNames makes validation errors name fields by their json tag.
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError writes err as {"error": message, "code": CODE} and attaches it
// to the context so the request logger records the underlying cause.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	code := apperr.CodeOf(err)
	c.AbortWithStatusJSON(code.HTTPStatus(), gin.H{
		"error": apperr.MessageOf(err),
		"code":  code,
	})
}

// bindJSON decodes and validates the request body into obj. It writes a 400
// and returns false when the body is malformed.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		invalid := apperr.InvalidInput("Invalid input: %s", describeBindError(err))
		invalid.Err = err
		respondError(c, invalid)
		return false
	}
	return true
}

// describeBindError renders a binding failure in terms of the JSON body.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = describeFieldError(fe)
		}
		return strings.Join(msgs, "; ")
	}

	var stdType *stdjson.UnmarshalTypeError
	if errors.As(err, &stdType) {
		return describeTypeError(stdType.Field, stdType.Value)
	}
	var goccyType *json.UnmarshalTypeError
	if errors.As(err, &goccyType) {
		return describeTypeError(goccyType.Field, goccyType.Value)
	}

	var stdSyntax *stdjson.SyntaxError
	var goccySyntax *json.SyntaxError
	if errors.As(err, &stdSyntax) || errors.As(err, &goccySyntax) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "request body must be a JSON object"
	}
	return err.Error()
}

func describeTypeError(field, value string) string {
	if field == "" {
		return "request body must be a JSON object"
	}
	return fmt.Sprintf("%s must not be a %s", field, value)
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
