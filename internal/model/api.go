package model

// ErrorResponse is the structured error body returned by the proxy
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuggestResponse represents the response for city suggestions
type SuggestResponse struct {
	Results []string `json:"results"`
}

// CitiesResponse lists the default cities in configured order
type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// SuggestRequest represents the request parameters for city suggestions
type SuggestRequest struct {
	Query string
	Limit int
}
