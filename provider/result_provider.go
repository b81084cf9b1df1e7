package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	coreredis "github.com/ExudusTech/bolao-engine/db/redis"
	"github.com/ExudusTech/bolao-engine/httpclient"
	"github.com/ExudusTech/bolao-engine/results"
	"github.com/rs/zerolog"
)

// ResultProvider implements providers.ResultProvider against the official
// lottery results API, with a Redis cache in front. A published draw never
// changes, so cached results are kept without expiry.
type ResultProvider struct {
	client *httpclient.Client
	cache  *coreredis.Client
	logger zerolog.Logger
}

// NewResultProvider creates a new result provider. cache may be nil, in
// which case every call hits the API.
func NewResultProvider(client *httpclient.Client, cache *coreredis.Client, logger zerolog.Logger) *ResultProvider {
	return &ResultProvider{
		client: client,
		cache:  cache,
		logger: logger.With().Str("component", "result_provider").Logger(),
	}
}

// drawPayload is the official API response shape.
type drawPayload struct {
	Contest  int      `json:"numero"`
	Numbers  []string `json:"listaDezenas"`
	DrawDate string   `json:"dataApuracao"`
}

func (p *ResultProvider) cacheKey(lottery string, contest int) string {
	return fmt.Sprintf("lottery:draw:%s:%d", lottery, contest)
}

// GetDraw returns the result of one contest, from cache when available.
func (p *ResultProvider) GetDraw(ctx context.Context, lottery string, contest int) (*results.Draw, error) {
	key := p.cacheKey(lottery, contest)

	if p.cache != nil {
		var cached results.Draw
		if err := p.cache.GetJSON(ctx, key, &cached); err == nil {
			p.logger.Debug().Str("key", key).Msg("Draw served from cache")
			return &cached, nil
		}
	}

	var payload drawPayload
	path := fmt.Sprintf("/%s/%d", lottery, contest)
	if err := p.client.GetJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch draw %s/%d: %w", lottery, contest, err)
	}

	draw, err := parseDraw(lottery, payload)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, key, draw, 0); err != nil {
			p.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache draw")
		}
	}

	return draw, nil
}

func parseDraw(lottery string, payload drawPayload) (*results.Draw, error) {
	if len(payload.Numbers) == 0 {
		return nil, fmt.Errorf("draw %s/%d has no numbers", lottery, payload.Contest)
	}

	numbers := make([]int, 0, len(payload.Numbers))
	for _, raw := range payload.Numbers {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("draw %s/%d has invalid number %q", lottery, payload.Contest, raw)
		}
		numbers = append(numbers, n)
	}

	// The API formats dates as dd/mm/yyyy. A missing or malformed date is
	// not fatal.
	drawDate, _ := time.Parse("02/01/2006", payload.DrawDate)

	return &results.Draw{
		Lottery:  lottery,
		Contest:  payload.Contest,
		Numbers:  numbers,
		DrawDate: drawDate,
	}, nil
}
