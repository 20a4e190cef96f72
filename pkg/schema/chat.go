package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest represents a request to answer one natural-language question
type ChatRequest struct {
	Message string `json:"message" arg:"" help:"Question to ask"`
}

// ChatResponse represents the final natural-language answer
type ChatResponse struct {
	Response string `json:"response"`
}

// HealthResponse represents the service health check
type HealthResponse struct {
	Status string `json:"status"`
	Tools  uint   `json:"tools"`
}
