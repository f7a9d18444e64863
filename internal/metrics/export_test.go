package metrics

// Collectors and helpers exposed to the external test package.
var (
	HTTPRequestsTotal   = httpRequestsTotal
	HTTPRequestDuration = httpRequestDuration
	NormalizePath       = normalizePath
)
