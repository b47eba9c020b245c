package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// StatsFeedClient pulls players, team aggregates and historical season lines
// from the external stats feed. The engine only ever reads what this client
// ingests; it never writes back.
type StatsFeedClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewStatsFeedClient creates a stats feed client with a request rate limit
// and a circuit breaker guarding the upstream.
func NewStatsFeedClient(baseURL, apiKey string, requestsPerSecond int, timeout time.Duration, logger *logrus.Logger) *StatsFeedClient {
	settings := gobreaker.Settings{
		Name:    "stats-feed",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Stats feed circuit breaker state change")
		},
	}

	return &StatsFeedClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// PlayerRecord is a roster entry as the feed reports it.
type PlayerRecord struct {
	ExternalID string `json:"id"`
	Name       string `json:"name"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Status     string `json:"status"`
}

// TeamStatRecord is one team's season aggregate as the feed reports it.
type TeamStatRecord struct {
	Team          string  `json:"team"`
	Season        int     `json:"season"`
	Plays         float64 `json:"plays"`
	PassAttempts  float64 `json:"pass_attempts"`
	Completions   float64 `json:"completions"`
	PassYards     float64 `json:"pass_yards"`
	PassTDs       float64 `json:"pass_td"`
	Interceptions float64 `json:"interceptions"`
	RushAttempts  float64 `json:"rush_attempts"`
	RushYards     float64 `json:"rush_yards"`
	RushTDs       float64 `json:"rush_td"`
	Targets       float64 `json:"targets"`
	Receptions    float64 `json:"receptions"`
	RecYards      float64 `json:"rec_yards"`
	RecTDs        float64 `json:"rec_td"`
}

// SeasonStatRecord is one player's season line as the feed reports it.
type SeasonStatRecord struct {
	PlayerExternalID string  `json:"player_id"`
	Season           int     `json:"season"`
	Games            float64 `json:"games"`
	PassAttempts     float64 `json:"pass_attempts"`
	Completions      float64 `json:"completions"`
	PassYards        float64 `json:"pass_yards"`
	PassTDs          float64 `json:"pass_td"`
	Interceptions    float64 `json:"interceptions"`
	RushAttempts     float64 `json:"rush_attempts"`
	RushYards        float64 `json:"rush_yards"`
	RushTDs          float64 `json:"rush_td"`
	Targets          float64 `json:"targets"`
	Receptions       float64 `json:"receptions"`
	RecYards         float64 `json:"rec_yards"`
	RecTDs           float64 `json:"rec_td"`
}

// GetPlayers fetches the active roster for a season.
func (c *StatsFeedClient) GetPlayers(ctx context.Context, season int) ([]PlayerRecord, error) {
	var players []PlayerRecord
	url := fmt.Sprintf("%s/v1/players?season=%d", c.baseURL, season)
	if err := c.getJSON(ctx, url, &players); err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	return players, nil
}

// GetTeamStats fetches every team's season aggregate.
func (c *StatsFeedClient) GetTeamStats(ctx context.Context, season int) ([]TeamStatRecord, error) {
	var teamStats []TeamStatRecord
	url := fmt.Sprintf("%s/v1/team-stats?season=%d", c.baseURL, season)
	if err := c.getJSON(ctx, url, &teamStats); err != nil {
		return nil, fmt.Errorf("failed to fetch team stats: %w", err)
	}
	return teamStats, nil
}

// GetSeasonStats fetches player season lines for a (typically prior) season.
func (c *StatsFeedClient) GetSeasonStats(ctx context.Context, season int) ([]SeasonStatRecord, error) {
	var seasonStats []SeasonStatRecord
	url := fmt.Sprintf("%s/v1/season-stats?season=%d", c.baseURL, season)
	if err := c.getJSON(ctx, url, &seasonStats); err != nil {
		return nil, fmt.Errorf("failed to fetch season stats: %w", err)
	}
	return seasonStats, nil
}

func (c *StatsFeedClient) getJSON(ctx context.Context, url string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("stats feed returned status %d", resp.StatusCode)
		}

		var decoded json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body.(json.RawMessage), dest)
}
