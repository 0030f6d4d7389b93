package types

import "errors"

// Upstream error taxonomy. Repositories and clients wrap these sentinels
// so handlers can map failures to status codes with errors.Is without
// inspecting upstream response bodies.
var (
	// ErrUpstreamDenied is returned when an upstream rejects the request
	// outright (HTTP 403), e.g. Nominatim blocking a missing User-Agent.
	ErrUpstreamDenied = errors.New("upstream denied request")

	// ErrUpstreamRateLimited is returned on HTTP 429 from an upstream.
	ErrUpstreamRateLimited = errors.New("upstream rate limit exceeded")

	// ErrUpstreamAuth is returned on HTTP 401 from an upstream.
	ErrUpstreamAuth = errors.New("upstream authentication failed")

	// ErrUpstreamUnavailable covers 5xx and transport-level failures.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrUpstreamTimeout is returned when an upstream call exceeds its
	// fixed budget.
	ErrUpstreamTimeout = errors.New("upstream request timed out")

	// ErrMissingAPIKey is returned when a required provider key is not
	// configured. Surfaces as a 500 with an explanatory message, never a
	// crash.
	ErrMissingAPIKey = errors.New("api key not configured")

	// ErrEmptyAIResponse is returned when the LLM reply has no content.
	ErrEmptyAIResponse = errors.New("empty response from AI service")

	// ErrInvalidAIResponse is returned when the LLM reply is not valid
	// JSON where JSON is required.
	ErrInvalidAIResponse = errors.New("AI returned invalid response format")

	// ErrIncompleteItinerary is returned when the LLM JSON parses but is
	// missing required itinerary fields.
	ErrIncompleteItinerary = errors.New("AI returned incomplete itinerary")
)
