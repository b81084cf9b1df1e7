package server

import (
	"time"

	"github.com/ExudusTech/bolao-engine/errors"
	"github.com/ExudusTech/bolao-engine/events/kafka"
	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/ExudusTech/bolao-engine/pkg/providers"
	"github.com/ExudusTech/bolao-engine/results"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ResultsHandler checks a pool's entries against official draw results.
type ResultsHandler struct {
	catalog   *lottery.Catalog
	provider  providers.ResultProvider
	publisher providers.EventPublisher
	logger    zerolog.Logger
}

// NewResultsHandler creates a new results handler. publisher may be nil.
func NewResultsHandler(catalog *lottery.Catalog, provider providers.ResultProvider, publisher providers.EventPublisher, logger zerolog.Logger) *ResultsHandler {
	return &ResultsHandler{
		catalog:   catalog,
		provider:  provider,
		publisher: publisher,
		logger:    logger.With().Str("handler", "results").Logger(),
	}
}

type checkResultsPayload struct {
	Lottery      string                  `json:"lottery" binding:"required"`
	Contest      int                     `json:"contest" binding:"required"`
	Bets         []lottery.Bet           `json:"bets"`
	Games        []lottery.SuggestedGame `json:"games"`
	WinThreshold int                     `json:"win_threshold"`
}

// CheckResults handles POST /api/pools/:pool_code/results/check
func (h *ResultsHandler) CheckResults(c *gin.Context) {
	poolCode := c.Param("pool_code")

	var payload checkResultsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, errors.WrapWithDebug(err, errors.ErrInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	if _, ok := h.catalog.Get(payload.Lottery); !ok {
		HandleAppError(c, errors.New(errors.ErrLotteryNotFound, "Unknown lottery: "+payload.Lottery))
		return
	}
	if h.provider == nil {
		ServiceUnavailable(c, errors.New(errors.ErrResultsError, "Results provider is not configured"))
		return
	}

	draw, err := h.provider.GetDraw(c.Request.Context(), payload.Lottery, payload.Contest)
	if err != nil {
		h.logger.Error().Err(err).
			Str("lottery", payload.Lottery).
			Int("contest", payload.Contest).
			Msg("Failed to fetch draw")
		HandleAppError(c, errors.Wrap(err, errors.ErrResultsError, "Failed to fetch draw results"))
		return
	}

	check := results.CheckPool(*draw, payload.Bets, payload.Games, payload.WinThreshold)

	h.publishCheck(poolCode, check)

	h.logger.Info().
		Str("pool_code", poolCode).
		Str("lottery", payload.Lottery).
		Int("contest", payload.Contest).
		Int("best_hit_count", check.BestHitCount).
		Int("winner_count", check.WinnerCount).
		Msg("Pool checked against draw")

	OK(c, check)
}

func (h *ResultsHandler) publishCheck(poolCode string, check *results.PoolCheck) {
	if h.publisher == nil {
		return
	}

	event := kafka.ResultsCheckedEvent{
		PoolCode:     poolCode,
		Lottery:      check.Lottery,
		Contest:      check.Contest,
		BestHitCount: check.BestHitCount,
		WinnerCount:  check.WinnerCount,
		CheckedAt:    time.Now().UTC(),
	}
	if err := h.publisher.SendMessage(kafka.TopicResultsChecked, poolCode, event); err != nil {
		h.logger.Error().Err(err).Str("pool_code", poolCode).Msg("Failed to publish results event")
	}
}
