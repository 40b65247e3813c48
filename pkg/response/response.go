package response

// ErrorBody matches the {"error": "..."} shape every handler returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error builds the body middleware uses when it rejects a request.
func Error(message string) ErrorBody {
	return ErrorBody{Error: message}
}
