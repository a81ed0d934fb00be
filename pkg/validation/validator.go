package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init points gin's validator at json/form/uri tag names, so error details
// use the names clients send, and registers the page-size aliases.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(tagName)
			v.RegisterAlias("pagelimit", "min=1,max=100")
			v.RegisterAlias("searchsize", "min=1,max=50")
		}
	})
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// IsMalformed reports whether err comes from a body that could not be decoded
// at all, as opposed to one that decoded but failed validation.
func IsMalformed(err error) bool {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	return errors.As(err, &se) || errors.As(err, &ute) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// ToDetails turns a binding error into field -> message pairs for the
// response "error" field.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if IsMalformed(err) {
		return map[string]string{"payload": "invalid json"}
	}

	// Query values that are not numbers never reach the validator.
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return map[string]string{"query": fmt.Sprintf("%q is not a valid number", ne.Num)}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// fixedMessages covers tags whose message does not depend on the parameter.
var fixedMessages = map[string]string{
	"required":   "is required",
	"uuid":       "must be a valid UUID",
	"uuid4":      "must be a valid UUID",
	"email":      "must be a valid email",
	"pagelimit":  "must be between 1 and 100",
	"searchsize": "must be between 1 and 50",
}

func formatFieldError(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	param := fe.Param()
	unit := ""
	if !isNumberKind(fe.Kind()) {
		unit = " characters long"
	}
	switch fe.Tag() {
	case "min":
		return "must be at least " + param + unit
	case "max":
		return "must be at most " + param + unit
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	}
	if param == "" {
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return fmt.Sprintf("failed %q validation (%s)", fe.Tag(), param)
}

func isNumberKind(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}
