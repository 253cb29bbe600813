package openai

import (
	"github.com/pvilarim/ecomdash-api/infrastructure/integrator/openai/openaiclient"
	"github.com/pvilarim/ecomdash-api/internal/config"
)

// Prompt de sistema usado em todas as gerações de análise. O resumo chega
// como texto simples e a resposta esperada é Markdown.
const insightsSystemPrompt = "Você é um analista financeiro de e-commerce. " +
	"A partir do resumo de métricas fornecido, escreva uma análise curta em Markdown " +
	"destacando lucro líquido, ROAS e margem, com no máximo três recomendações práticas."

type OpenAIIntegrator interface {
	GenerateInsights(summaryText string) (string, error)
}

type OpenAIService struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) OpenAIIntegrator {
	return &OpenAIService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *OpenAIService) GenerateInsights(summaryText string) (string, error) {
	params := openaiclient.ChatCompletionParams{
		SystemPrompt: insightsSystemPrompt,
		UserPrompt:   summaryText,
	}

	resp, err := s.Client.CreateChatCompletion(params)
	if err != nil {
		return "", err
	}

	return resp, nil
}
