package server

import (
	"github.com/ExudusTech/bolao-engine/engine"
	"github.com/ExudusTech/bolao-engine/errors"
	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SuggestionHandler exposes the analysis and generation endpoints.
type SuggestionHandler struct {
	service *SuggestionService
	catalog *lottery.Catalog
	logger  zerolog.Logger
}

// NewSuggestionHandler creates a new suggestion handler.
func NewSuggestionHandler(service *SuggestionService, catalog *lottery.Catalog, logger zerolog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		service: service,
		catalog: catalog,
		logger:  logger.With().Str("handler", "suggestion").Logger(),
	}
}

type selectionsPayload struct {
	PoolInput
	Selections []engine.Selection `json:"selections" binding:"required,min=1"`
}

type customPayload struct {
	PoolInput
	Size        int              `json:"size" binding:"required"`
	Category    lottery.Category `json:"category" binding:"required"`
	UsedNumbers []int            `json:"used_numbers"`
	Seed        int64            `json:"seed"`
}

// ListLotteries handles GET /api/lotteries
func (h *SuggestionHandler) ListLotteries(c *gin.Context) {
	OK(c, h.catalog.Modalities())
}

// Analyze handles POST /api/pools/:pool_code/analysis
func (h *SuggestionHandler) Analyze(c *gin.Context) {
	var input PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, errors.WrapWithDebug(err, errors.ErrInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	analysis, err := h.service.Analyze(input)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	OK(c, analysis)
}

// GenerateAuto handles POST /api/pools/:pool_code/suggestions/generate
func (h *SuggestionHandler) GenerateAuto(c *gin.Context) {
	poolCode := c.Param("pool_code")

	var input PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, errors.WrapWithDebug(err, errors.ErrInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	resp, err := h.service.GenerateAuto(c.Request.Context(), poolCode, input)
	if err != nil {
		h.logger.Error().Err(err).Str("pool_code", poolCode).Msg("Automatic generation failed")
		HandleAppError(c, err)
		return
	}

	h.logger.Info().
		Str("pool_code", poolCode).
		Str("lottery", input.Lottery).
		Int("suggestions", len(resp.Suggestions)).
		Int("skipped", len(resp.Skipped)).
		Msg("Automatic suggestions generated")

	OK(c, resp)
}

// GenerateSelections handles POST /api/pools/:pool_code/suggestions/selections
func (h *SuggestionHandler) GenerateSelections(c *gin.Context) {
	poolCode := c.Param("pool_code")

	var payload selectionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, errors.WrapWithDebug(err, errors.ErrInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	resp, err := h.service.GenerateFromSelections(c.Request.Context(), poolCode, payload.PoolInput, payload.Selections)
	if err != nil {
		h.logger.Error().Err(err).Str("pool_code", poolCode).Msg("Selections generation failed")
		HandleAppError(c, err)
		return
	}

	h.logger.Info().
		Str("pool_code", poolCode).
		Str("lottery", payload.Lottery).
		Int("selections", len(payload.Selections)).
		Int("suggestions", len(resp.Suggestions)).
		Msg("Selections suggestions generated")

	OK(c, resp)
}

// GenerateCustom handles POST /api/pools/:pool_code/suggestions/custom
func (h *SuggestionHandler) GenerateCustom(c *gin.Context) {
	poolCode := c.Param("pool_code")

	var payload customPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, errors.WrapWithDebug(err, errors.ErrInvalidRequest, "Invalid request body", err.Error()))
		return
	}

	resp, err := h.service.GenerateCustom(c.Request.Context(), poolCode, payload.PoolInput,
		payload.Size, payload.Category, payload.UsedNumbers, payload.Seed)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	OK(c, resp)
}
