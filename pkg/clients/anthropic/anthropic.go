package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Client defines the interface for advisory text generation.
type Client interface {
	GenerateInsights(ctx context.Context, dataSummary string) (string, error)
	FetchMarketPrice(ctx context.Context) (MarketQuote, error)
	SimulateScenarios(ctx context.Context, currentPrice, costPerAnimal float64) ([]Scenario, error)
}

// MarketQuote carries a free-text market price answer plus any sources the
// model named.
type MarketQuote struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
}

// Scenario is one simulated market outcome for the current herd cost basis.
type Scenario struct {
	Scenario string  `json:"scenario"`
	Price    float64 `json:"price"`
	Profit   float64 `json:"profit"`
	Comment  string  `json:"comment"`
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of an Anthropic conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateInsights asks for short strategic advice over the farm's financial
// summary.
func (c *anthropicClient) GenerateInsights(ctx context.Context, dataSummary string) (string, error) {
	system := "Você é um consultor financeiro sênior especializado em pecuária de corte. " +
		"Analise os dados financeiros da fazenda e forneça insights estratégicos curtos (máximo 3 pontos). " +
		"FOCO: custos por animal, margem de lucro e eficiência alimentar. " +
		"Responda em Português do Brasil com tom profissional e acionável."

	prompt := fmt.Sprintf("Dados:\n%s", dataSummary)

	text, err := c.complete(ctx, system, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// FetchMarketPrice asks for the current fat-cattle arroba quotation.
func (c *anthropicClient) FetchMarketPrice(ctx context.Context) (MarketQuote, error) {
	system := "Você é um analista de mercado pecuário. Responda em Português do Brasil. " +
		`Sua resposta deve ser APENAS um objeto JSON no formato {"text": "...", "sources": ["..."]}.`

	prompt := "Qual é a cotação atualizada da arroba do boi gordo hoje no Brasil (valor médio CEPEA)? " +
		"Forneça o valor numérico e a fonte."

	// Prefill the assistant response to force JSON output.
	messages := []Message{
		{Role: "user", Content: prompt},
		{Role: "assistant", Content: "{"},
	}

	text, err := c.complete(ctx, system, messages)
	if err != nil {
		return MarketQuote{}, err
	}

	var quote MarketQuote
	if err := json.Unmarshal([]byte(stripFences("{" + text)), &quote); err != nil {
		return MarketQuote{}, fmt.Errorf("failed to unmarshal market quote: %w", err)
	}
	return quote, nil
}

// SimulateScenarios asks for three market scenarios given the reference
// price and the production cost per animal.
func (c *anthropicClient) SimulateScenarios(ctx context.Context, currentPrice, costPerAnimal float64) ([]Scenario, error) {
	system := "Você é um analista de mercado pecuário. Responda APENAS com um array JSON válido, sem texto adicional."

	prompt := fmt.Sprintf(`Simule 3 cenários de mercado para o preço da arroba do boi gordo e como isso afeta o lucro líquido de um animal com custo de produção de R$ %.2f.
O preço atual de referência é R$ %.2f por arroba.
Considere um animal médio de 18 arrobas.

Formato:
[
  { "scenario": "Pessimista", "price": 0, "profit": 0, "comment": "" },
  ...
]`, costPerAnimal, currentPrice)

	messages := []Message{
		{Role: "user", Content: prompt},
		{Role: "assistant", Content: "["},
	}

	text, err := c.complete(ctx, system, messages)
	if err != nil {
		return nil, err
	}

	var scenarios []Scenario
	if err := json.Unmarshal([]byte(stripFences("["+text)), &scenarios); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenarios: %w", err)
	}
	return scenarios, nil
}

func (c *anthropicClient) complete(ctx context.Context, system string, messages []Message) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Content[0].Text, nil
}

// stripFences removes markdown code fences when the model wraps its JSON
// answer despite the prefill.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
