package chi

import (
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	domprofile "github.com/kailas-cloud/stranalyzer/internal/domain/profile"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	strusecase "github.com/kailas-cloud/stranalyzer/internal/usecase/strings"
)

// ErrorCode classifies client-facing validation errors.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// profileTimeLayout renders UTC with millisecond precision and a Z suffix.
const profileTimeLayout = "2006-01-02T15:04:05.000Z"

// ErrorResponse is the body of validation and internal errors.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the body of not-found and conflict errors.
type MessageResponse struct {
	Error string `json:"error"`
}

// CreateStringRequest is the body of POST /strings.
type CreateStringRequest struct {
	Value string `json:"value"`
}

// PropertiesResponse holds the computed properties of a string.
type PropertiesResponse struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringResponse is the representation of a stored string.
type StringResponse struct {
	ID         string             `json:"id"`
	Value      string             `json:"value"`
	Properties PropertiesResponse `json:"properties"`
	CreatedAt  time.Time          `json:"created_at"`
}

// StringListResponse is the body of GET /strings.
type StringListResponse struct {
	Data           []StringResponse `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied map[string]any   `json:"filters_applied"`
}

// ProfileResponse is the body of GET /me.
type ProfileResponse struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Stack          string `json:"stack"`
	CurrentUTCTime string `json:"current_utc_time"`
	CatFact        string `json:"cat_fact"`
	Status         string `json:"status"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func stringToResponse(e *analysis.Entry) StringResponse {
	p := e.Properties()
	return StringResponse{
		ID:    e.ID().String(),
		Value: e.Value(),
		Properties: PropertiesResponse{
			Length:                p.Length,
			IsPalindrome:          p.IsPalindrome,
			UniqueCharacters:      p.UniqueCharacters,
			WordCount:             p.WordCount,
			SHA256Hash:            p.SHA256Hash,
			CharacterFrequencyMap: p.Frequency,
		},
		CreatedAt: e.CreatedAt().UTC(),
	}
}

func listToResponse(res strusecase.ListResult) StringListResponse {
	data := make([]StringResponse, len(res.Entries))
	for i := range res.Entries {
		data[i] = stringToResponse(&res.Entries[i])
	}
	applied := res.Applied
	if applied == nil {
		applied = map[string]any{}
	}
	return StringListResponse{Data: data, Count: res.Count, FiltersApplied: applied}
}

func profileToResponse(p domprofile.Profile) ProfileResponse {
	return ProfileResponse{
		FullName:       p.FullName,
		Email:          p.Email,
		Stack:          p.Stack,
		CurrentUTCTime: p.CurrentUTCTime.UTC().Format(profileTimeLayout),
		CatFact:        p.CatFact,
		Status:         p.Status,
	}
}

func healthToResponse(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}
