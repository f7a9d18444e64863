package chi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// Field-level messages for the value field.
const (
	msgRequired  = "This field is required."
	msgNotString = "Not a valid string."
	msgBlank     = "This field may not be blank."
	msgTooLong   = "Ensure this field has no more than %d characters."
)

// requestError is a rejected request body.
type requestError struct {
	code    ErrorCode
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

func validationFailed(field, msg string) *requestError {
	return &requestError{
		code:    ErrorCodeValidationFailed,
		message: "Invalid value for field '" + field + "'",
		fields:  map[string]string{field: msg},
	}
}

// bodyValidator validates decoded request bodies.
type bodyValidator struct {
	validate  *validator.Validate
	valueRule string
	maxLength int
}

func newBodyValidator(maxLength int) *bodyValidator {
	return &bodyValidator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		valueRule: "required,max=" + strconv.Itoa(maxLength),
		maxLength: maxLength,
	}
}

// decodeCreateString reads a POST /strings body. Shape errors (missing or
// non-string value) are detected on the raw object before typed decoding so
// each gets its own field message.
func (v *bodyValidator) decodeCreateString(w http.ResponseWriter, r *http.Request) (CreateStringRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return CreateStringRequest{}, &requestError{
			code: ErrorCodeBadRequest, message: "Invalid request body: " + err.Error(),
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return CreateStringRequest{}, &requestError{
			code: ErrorCodeBadRequest, message: "Invalid request body: expected a JSON object",
		}
	}

	field, ok := raw["value"]
	if !ok || bytes.Equal(bytes.TrimSpace(field), []byte("null")) {
		return CreateStringRequest{}, validationFailed("value", msgRequired)
	}

	var req CreateStringRequest
	if err := json.Unmarshal(field, &req.Value); err != nil {
		return CreateStringRequest{}, validationFailed("value", msgNotString)
	}

	if err := v.validate.Var(req.Value, v.valueRule); err != nil {
		return CreateStringRequest{}, v.translate(err)
	}
	return req, nil
}

func (v *bodyValidator) translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return validationFailed("value", err.Error())
	}
	switch verrs[0].Tag() {
	case "required":
		return validationFailed("value", msgBlank)
	case "max":
		return validationFailed("value", fmt.Sprintf(msgTooLong, v.maxLength))
	default:
		return validationFailed("value", verrs[0].Error())
	}
}
