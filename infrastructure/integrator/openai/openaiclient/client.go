package openaiclient

import (
	"net/http"
	"time"

	"github.com/pvilarim/ecomdash-api/internal/config"
)

type Client interface {
	CreateChatCompletion(params ChatCompletionParams) (string, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente da API da OpenAI.
func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config: cfg,
	}
}
