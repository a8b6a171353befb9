package dto

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse is the uniform success body for endpoints that return
// no entity.
type MessageResponse struct {
	Message string `json:"message"`
}
