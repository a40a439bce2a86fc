package dto

// ErrorResponse cuerpo de error HTTP: { "error": <mensaje> }.
type ErrorResponse struct {
	Error string `json:"error"`
}
