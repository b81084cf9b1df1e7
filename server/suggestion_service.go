package server

import (
	"context"
	"time"

	"github.com/ExudusTech/bolao-engine/engine"
	"github.com/ExudusTech/bolao-engine/errors"
	"github.com/ExudusTech/bolao-engine/events/kafka"
	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/ExudusTech/bolao-engine/pkg/providers"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SuggestionService orchestrates the analyzer and the generation engine.
//
// Flow: poolRoutes -> SuggestionHandler -> SuggestionService -> engine
//
// The service:
// 1. Resolves the lottery modality from the catalog
// 2. Validates bets against the modality
// 3. Derives the available budget from revenue and committed costs
// 4. Runs the analyzer and the requested generation mode
// 5. Publishes a generation event when a publisher is configured
//
// Every call receives the full pool input; the service holds no per-pool
// state between calls.
type SuggestionService struct {
	catalog   *lottery.Catalog
	publisher providers.EventPublisher
	topics    map[string]string
	logger    zerolog.Logger
}

// NewSuggestionService creates a new suggestion service. publisher may be
// nil to disable events.
func NewSuggestionService(catalog *lottery.Catalog, publisher providers.EventPublisher, topics map[string]string, logger zerolog.Logger) *SuggestionService {
	return &SuggestionService{
		catalog:   catalog,
		publisher: publisher,
		topics:    topics,
		logger:    logger.With().Str("service", "suggestion").Logger(),
	}
}

// PoolInput is the pool snapshot every generation call receives.
type PoolInput struct {
	Lottery          string          `json:"lottery" binding:"required"`
	Bets             []lottery.Bet   `json:"bets"`
	Revenue          decimal.Decimal `json:"revenue"`
	CommittedCost    decimal.Decimal `json:"committed_cost"`
	ExistingGameKeys []string        `json:"existing_game_keys"`
}

// GenerateResponse is the output of the bulk generation modes.
type GenerateResponse struct {
	Lottery             string                  `json:"lottery"`
	Analysis            *lottery.Analysis       `json:"analysis"`
	Suggestions         []lottery.SuggestedGame `json:"suggestions"`
	Skipped             []lottery.SkippedGame   `json:"skipped"`
	IndividualGamesCost decimal.Decimal         `json:"individual_games_cost"`
	AvailableBudget     decimal.Decimal         `json:"available_budget"`
	TotalSuggestedCost  decimal.Decimal         `json:"total_suggested_cost"`
	RemainingBudget     decimal.Decimal         `json:"remaining_budget"`
}

// resolvePool validates the pool input and returns the modality, the
// analysis and the full exclusion set (bet signatures plus caller-supplied
// keys).
func (s *SuggestionService) resolvePool(input PoolInput) (lottery.Modality, *lottery.Analysis, []string, error) {
	modality, ok := s.catalog.Get(input.Lottery)
	if !ok {
		return lottery.Modality{}, nil, nil, errors.New(errors.ErrLotteryNotFound, "Unknown lottery: "+input.Lottery)
	}

	for _, bet := range input.Bets {
		if err := bet.Validate(modality); err != nil {
			return lottery.Modality{}, nil, nil, errors.WrapWithDebug(err, errors.ErrInvalidBet, "Invalid bet", err.Error())
		}
	}

	analysis, err := lottery.Analyze(input.Bets, modality.NumberRange)
	if err != nil {
		return lottery.Modality{}, nil, nil, errors.Wrap(err, errors.ErrAnalysisError, "Failed to analyze bets")
	}

	betKeys := lo.Map(input.Bets, func(bet lottery.Bet, _ int) string {
		return bet.Key()
	})
	exclusions := append(betKeys, input.ExistingGameKeys...)

	return modality, analysis, exclusions, nil
}

// budget derives the spendable amount: revenue minus the cost of every
// individual bet (each priced at the minimum game size) minus whatever the
// pool already committed to saved games.
func (s *SuggestionService) budget(input PoolInput, modality lottery.Modality) (individualCost, available decimal.Decimal) {
	minPrice, _ := modality.PriceFor(modality.MinGameSize)
	individualCost = minPrice.Mul(decimal.NewFromInt(int64(len(input.Bets))))
	available = input.Revenue.Sub(individualCost).Sub(input.CommittedCost)
	return individualCost, available
}

// Analyze runs only the number analyzer over the pool's bets.
func (s *SuggestionService) Analyze(input PoolInput) (*lottery.Analysis, error) {
	_, analysis, _, err := s.resolvePool(input)
	return analysis, err
}

// GenerateAuto runs automatic two-phase generation.
func (s *SuggestionService) GenerateAuto(ctx context.Context, poolCode string, input PoolInput) (*GenerateResponse, error) {
	modality, analysis, exclusions, err := s.resolvePool(input)
	if err != nil {
		return nil, err
	}

	individualCost, available := s.budget(input, modality)

	result := engine.Generate(engine.Request{
		Modality:     modality,
		Analysis:     analysis,
		Budget:       available,
		ExistingKeys: exclusions,
	})

	s.publishGeneration(poolCode, input.Lottery, "auto", result)

	return s.buildResponse(input, analysis, result, individualCost, available), nil
}

// GenerateFromSelections runs caller-directed generation.
func (s *SuggestionService) GenerateFromSelections(ctx context.Context, poolCode string, input PoolInput, selections []engine.Selection) (*GenerateResponse, error) {
	modality, analysis, exclusions, err := s.resolvePool(input)
	if err != nil {
		return nil, err
	}

	for _, sel := range selections {
		if !sel.Category.Valid() {
			return nil, errors.New(errors.ErrInvalidCategory, "Unknown category: "+string(sel.Category))
		}
		if !modality.SupportsSize(sel.Size) {
			return nil, errors.New(errors.ErrInvalidGameSize, "Unsupported game size for this lottery")
		}
		if sel.Quantity < 1 {
			return nil, errors.New(errors.ErrInvalidRequest, "Selection quantity must be at least 1")
		}
	}

	individualCost, available := s.budget(input, modality)

	result := engine.GenerateFromSelections(engine.SelectionsRequest{
		Modality:     modality,
		Analysis:     analysis,
		Budget:       available,
		Selections:   selections,
		ExistingKeys: exclusions,
	})

	s.publishGeneration(poolCode, input.Lottery, "selections", result)

	return s.buildResponse(input, analysis, result, individualCost, available), nil
}

// CustomResponse is the output of the ad hoc single-game path. Game is nil
// when no unique combination could be produced.
type CustomResponse struct {
	Game   *lottery.SuggestedGame `json:"game"`
	Reason string                 `json:"reason,omitempty"`
}

// GenerateCustom builds one ad hoc game.
func (s *SuggestionService) GenerateCustom(ctx context.Context, poolCode string, input PoolInput, size int, category lottery.Category, usedNumbers []int, seed int64) (*CustomResponse, error) {
	modality, analysis, exclusions, err := s.resolvePool(input)
	if err != nil {
		return nil, err
	}

	if !category.Valid() {
		return nil, errors.New(errors.ErrInvalidCategory, "Unknown category: "+string(category))
	}
	price, ok := modality.PriceFor(size)
	if !ok {
		return nil, errors.New(errors.ErrInvalidGameSize, "Unsupported game size for this lottery")
	}

	_, available := s.budget(input, modality)
	if price.GreaterThan(available) {
		return &CustomResponse{
			Reason: "Saldo disponível não cobre o preço desse jogo",
		}, nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := engine.GenerateOne(engine.CustomRequest{
		Modality:     modality,
		Analysis:     analysis,
		Size:         size,
		Category:     category,
		ExistingKeys: exclusions,
		UsedNumbers:  usedNumbers,
		Seed:         seed,
	})
	if game == nil {
		return &CustomResponse{
			Reason: "Não foi possível gerar um jogo único com esses critérios",
		}, nil
	}

	s.logger.Info().
		Str("pool_code", poolCode).
		Str("category", string(category)).
		Int("size", size).
		Msg("Custom game generated")

	return &CustomResponse{Game: game}, nil
}

func (s *SuggestionService) buildResponse(input PoolInput, analysis *lottery.Analysis, result *engine.Result, individualCost, available decimal.Decimal) *GenerateResponse {
	return &GenerateResponse{
		Lottery:             input.Lottery,
		Analysis:            analysis,
		Suggestions:         result.Suggestions,
		Skipped:             result.Skipped,
		IndividualGamesCost: individualCost,
		AvailableBudget:     available,
		TotalSuggestedCost:  result.TotalCost,
		RemainingBudget:     available.Sub(result.TotalCost),
	}
}

// publishGeneration emits a generation event; failures are logged, never
// propagated.
func (s *SuggestionService) publishGeneration(poolCode, lotteryCode, mode string, result *engine.Result) {
	if s.publisher == nil {
		return
	}

	topic := s.topic("suggestions_generated", kafka.TopicSuggestionsGenerated)
	event := kafka.SuggestionsGeneratedEvent{
		PoolCode:        poolCode,
		Lottery:         lotteryCode,
		Mode:            mode,
		SuggestionCount: len(result.Suggestions),
		SkippedCount:    len(result.Skipped),
		TotalCost:       result.TotalCost,
		GeneratedAt:     time.Now().UTC(),
	}
	if err := s.publisher.SendMessage(topic, poolCode, event); err != nil {
		s.logger.Error().Err(err).Str("pool_code", poolCode).Msg("Failed to publish generation event")
	}
}

func (s *SuggestionService) topic(name, fallback string) string {
	if topic, ok := s.topics[name]; ok && topic != "" {
		return topic
	}
	return fallback
}
