package dto

// ErrorResponse is the uniform error body for the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
