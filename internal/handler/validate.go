package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so details match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// replacer is implemented by inputs whose full-replace update requires more
// than create does. ForReplace returns the value to validate on update.
type replacer interface {
	ForReplace() any
}

// decodeBody reads one JSON object into dst and validates it. Unknown fields
// and trailing data are rejected. On failure it writes the response and
// returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if dec.More() {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return validateInput(w, r, dst)
}

// decodeReplaceBody is decodeBody for full-replace updates.
func decodeReplaceBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !decodeBody(w, r, dst) {
		return false
	}
	if rep, ok := dst.(replacer); ok {
		return validateInput(w, r, rep.ForReplace())
	}
	return true
}

func validateInput(w http.ResponseWriter, r *http.Request, v any) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeInternal(w, r, "failed to validate request", err)
		return false
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: details})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	default:
		return "Invalid value"
	}
}
