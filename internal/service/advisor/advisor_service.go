package advisor

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/pkg/clients/anthropic"
)

// Fallback values served whenever the collaborator is unavailable or fails.
// Advisory answers are best-effort and must never block the core operations.
const (
	fallbackInsights = "Não foi possível gerar insights no momento."
	fallbackQuote    = "R$ 232,50 (Valores simulados por erro de conexão)"
)

// Service wraps the advisory LLM client with caller-side fallbacks. A nil
// client (no API key configured) serves fallbacks only.
type Service struct {
	client anthropic.Client
	logger *zap.Logger
}

// NewService wires a new advisor service instance.
func NewService(client anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// GenerateInsights returns strategic advice over the given financial summary,
// or a fixed fallback string on any failure.
func (s *Service) GenerateInsights(ctx context.Context, dataSummary string) string {
	if s.client == nil {
		return fallbackInsights
	}

	text, err := s.client.GenerateInsights(ctx, dataSummary)
	if err != nil {
		s.logger.Warn("insights generation failed", zap.Error(err))
		return fallbackInsights
	}
	return text
}

// FetchMarketPrice returns the current market quotation, or a simulated quote
// with no sources on any failure.
func (s *Service) FetchMarketPrice(ctx context.Context) anthropic.MarketQuote {
	if s.client == nil {
		return anthropic.MarketQuote{Text: fallbackQuote, Sources: []string{}}
	}

	quote, err := s.client.FetchMarketPrice(ctx)
	if err != nil {
		s.logger.Warn("market price fetch failed", zap.Error(err))
		return anthropic.MarketQuote{Text: fallbackQuote, Sources: []string{}}
	}
	if quote.Sources == nil {
		quote.Sources = []string{}
	}
	return quote
}

// SimulateScenarios returns simulated market scenarios, or an empty list on
// any failure.
func (s *Service) SimulateScenarios(ctx context.Context, currentPrice, costPerAnimal float64) []anthropic.Scenario {
	if s.client == nil {
		return []anthropic.Scenario{}
	}

	scenarios, err := s.client.SimulateScenarios(ctx, currentPrice, costPerAnimal)
	if err != nil {
		s.logger.Warn("scenario simulation failed", zap.Error(err))
		return []anthropic.Scenario{}
	}
	if scenarios == nil {
		scenarios = []anthropic.Scenario{}
	}
	return scenarios
}
