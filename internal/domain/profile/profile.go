package profile

import "time"

// FactPlaceholderPrefix prefixes the text substituted for an unavailable fact.
const FactPlaceholderPrefix = "Error retrieving cat fact: "

// Profile is the payload served by the profile endpoint.
type Profile struct {
	FullName       string
	Email          string
	Stack          string
	CurrentUTCTime time.Time
	CatFact        string
	Status         string
}

// Placeholder returns the fact text used when the provider failed.
func Placeholder(err error) string {
	return FactPlaceholderPrefix + err.Error()
}
