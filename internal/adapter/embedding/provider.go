package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// HTTPEmbedder talks to an OpenAI-compatible /embeddings endpoint. Both
// hosted providers and a local Ollama server expose this API shape, which
// keeps the archive usable fully offline with a local model.
type HTTPEmbedder struct {
	apiKey    string
	model     string
	baseURL   string
	dimension int
	client    *http.Client
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API. The key
// is read from the named environment variable.
func NewOpenAIEmbedder(apiKeyEnv, model string, dimension int) (*HTTPEmbedder, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if dimension <= 0 {
		switch model {
		case "text-embedding-3-large":
			dimension = 3072
		default:
			dimension = 1536
		}
	}
	return &HTTPEmbedder{
		apiKey:    apiKey,
		model:     model,
		baseURL:   "https://api.openai.com/v1",
		dimension: dimension,
		client:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewOllamaEmbedder creates an embedder backed by a local Ollama server.
// The default model is all-minilm, a sentence-transformer producing
// 384-dimensional normalized vectors.
func NewOllamaEmbedder(model, baseURL string, dimension int) (*HTTPEmbedder, error) {
	if model == "" {
		model = "all-minilm"
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	if dimension <= 0 {
		switch model {
		case "mxbai-embed-large":
			dimension = 1024
		case "nomic-embed-text":
			dimension = 768
		default:
			dimension = 384
		}
	}
	return &HTTPEmbedder{
		apiKey:    "ollama",
		model:     model,
		baseURL:   baseURL,
		dimension: dimension,
		client:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (e *HTTPEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	const maxBatch = 100
	var all [][]float32

	for i := 0; i < len(texts); i += maxBatch {
		end := i + maxBatch
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := e.embedBatch(texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, vectors...)
	}

	return all, nil
}

func (e *HTTPEmbedder) embedBatch(texts []string) ([][]float32, error) {
	payload, err := json.Marshal(embeddingRequest{Input: texts, Model: e.model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse embedding response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("embedding API error: %s", parsed.Error.Message)
	}

	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index >= 0 && d.Index < len(vectors) {
			vectors[d.Index] = d.Embedding
		}
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("embedding API returned no vector for input %d", i)
		}
		if len(v) != e.dimension {
			return nil, fmt.Errorf("embedding API returned %d-dimensional vector, expected %d", len(v), e.dimension)
		}
	}

	return vectors, nil
}

func (e *HTTPEmbedder) Dimension() int {
	return e.dimension
}

func (e *HTTPEmbedder) ModelName() string {
	return e.model
}
