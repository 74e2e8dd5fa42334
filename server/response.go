package server

import "github.com/poiesic/gamerec/present"

const (
	missingQueryMessage = "Missing query"
	testMessage         = "Server is running. POST to /recommend with JSON data."
)

type recommendRequest struct {
	Query string `json:"query"`
	Tone  string `json:"tone"`
}

type recommendResponse struct {
	Recommendations []present.Recommendation `json:"recommendations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status         string `json:"status"`
	Games          int    `json:"games"`
	Chunks         int    `json:"chunks"`
	EmbeddingModel string `json:"embedding_model"`
	BuiltAt        string `json:"built_at"`
	CachedResults  int    `json:"cached_results"`
}
