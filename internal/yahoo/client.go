package yahoo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jarinudom/blitzgremlin/internal/credentials"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/tree"
)

// Client fetches player statistics from the upstream fantasy API. It builds
// league-scoped resource URLs, performs authenticated GETs through the
// credential provider, decodes the response into a generic tree and
// normalizes every repeatable field before extraction.
type Client struct {
	creds      credentials.Provider
	dec        Decoder
	categories CategoryResolver
	metrics    metrics.Metrics
	gameID     string
	BaseURL    string
}

var _ FantasyClient = (*Client)(nil)

// NewClient creates a new upstream client. gameID is the fixed game prefix
// used to widen bare numeric league ids.
func NewClient(creds credentials.Provider, dec Decoder, categories CategoryResolver, metricsSvc metrics.Metrics, gameID string) *Client {
	return &Client{
		creds:      creds,
		dec:        dec,
		categories: categories,
		metrics:    metricsSvc,
		gameID:     gameID,
		BaseURL:    BaseURL,
	}
}

// NormalizeLeague widens a bare numeric league id into the fully-qualified
// "{game_id}.l.{id}" form. Already-qualified keys pass through unchanged.
func (c *Client) NormalizeLeague(league string) LeagueKey {
	return NormalizeLeagueKey(c.gameID, league)
}

// FetchOne fetches stats for a single player, enriched with the league's
// category display names.
func (c *Client) FetchOne(ctx context.Context, league LeagueKey, player PlayerKey, scope StatScope) (EnrichedPlayerStats, error) {
	url := playerStatsURL(c.BaseURL, league, []PlayerKey{player}, scope)
	node, err := c.getTree(ctx, url, "player stats fetch")
	if err != nil {
		return EnrichedPlayerStats{}, err
	}

	parsed := parseMultiPlayerStats(node)
	if len(parsed) == 0 {
		c.metrics.IncUpstreamRequest(metrics.OutcomeMalformed)
		return EnrichedPlayerStats{}, &MalformedError{Reason: fmt.Sprintf("no player entry in response for %s", player)}
	}

	names := c.categories.Resolve(ctx, league)
	return enrich(parsed[0], league, scope, names), nil
}

// FetchMany fetches stats for several players in one upstream call. The
// result may contain fewer entries than requested; callers own the choice
// of whether that is acceptable.
func (c *Client) FetchMany(ctx context.Context, league LeagueKey, players []PlayerKey, scope StatScope) ([]EnrichedPlayerStats, error) {
	if len(players) == 0 {
		return []EnrichedPlayerStats{}, nil
	}

	url := playerStatsURL(c.BaseURL, league, players, scope)
	node, err := c.getTree(ctx, url, "batch stats fetch")
	if err != nil {
		return nil, err
	}

	parsed := parseMultiPlayerStats(node)
	names := c.categories.Resolve(ctx, league)

	out := make([]EnrichedPlayerStats, 0, len(parsed))
	for _, raw := range parsed {
		out = append(out, enrich(raw, league, scope, names))
	}
	return out, nil
}

// FetchRoster fetches the roster of a team, without stats.
func (c *Client) FetchRoster(ctx context.Context, teamKey string) ([]RosterSlot, error) {
	url := rosterURL(c.BaseURL, teamKey)
	node, err := c.getTree(ctx, url, "roster fetch")
	if err != nil {
		return nil, err
	}
	return parseRoster(node), nil
}

// getTree performs one authenticated GET, decodes the body and applies the
// error taxonomy. The upstream can report failures three ways: transport
// errors, non-2xx statuses, and 200 responses carrying an <error> body.
func (c *Client) getTree(ctx context.Context, url, op string) (tree.Node, error) {
	log.Debug("Upstream request", "url", url)

	start := time.Now()
	body, status, err := c.creds.AuthenticatedGet(ctx, url)
	c.metrics.ObserveFetchDuration(time.Since(start).Seconds())
	if err != nil {
		var authErr *credentials.AuthError
		if errors.As(err, &authErr) {
			log.Warn("Upstream request failed: not authenticated", "url", url)
			c.metrics.IncUpstreamRequest(metrics.OutcomeUnauthenticated)
			return nil, ErrUnauthenticated
		}
		log.Error("Upstream request failed", "url", url, "error", err)
		c.metrics.IncUpstreamRequest(metrics.OutcomeTransient)
		return nil, &TransientError{Op: op, Err: err}
	}

	if status >= 500 {
		log.Error("Upstream returned server error", "status", status, "url", url)
		c.metrics.IncUpstreamRequest(metrics.OutcomeTransient)
		return nil, &TransientError{Op: op, Err: fmt.Errorf("upstream returned %d", status)}
	}

	node, decErr := c.dec.Decode(body)

	if status >= 400 {
		if decErr == nil {
			if desc, ok := upstreamErrorDescription(node); ok {
				return nil, c.classify(desc, status, url)
			}
		}
		log.Error("Upstream returned client error", "status", status, "url", url)
		c.metrics.IncUpstreamRequest(metrics.OutcomeTransient)
		return nil, &TransientError{Op: op, Err: fmt.Errorf("upstream returned %d", status)}
	}

	if decErr != nil {
		log.Error("Failed to decode upstream response", "url", url, "error", decErr)
		c.metrics.IncUpstreamRequest(metrics.OutcomeMalformed)
		return nil, &MalformedError{Reason: "undecodable response body", Err: decErr}
	}

	// The upstream sometimes answers 200 OK with an error payload.
	if desc, ok := upstreamErrorDescription(node); ok {
		return nil, c.classify(desc, status, url)
	}

	log.Debug("Upstream response", "status", status, "url", url)
	c.metrics.IncUpstreamRequest(metrics.OutcomeOK)
	return node, nil
}

func (c *Client) classify(desc string, status int, url string) error {
	err := classifyDescription(desc)
	if IsRejected(err) {
		log.Warn("Upstream rejected request", "status", status, "url", url, "description", desc)
		c.metrics.IncUpstreamRequest(metrics.OutcomeRejected)
	} else {
		log.Error("Upstream reported error", "status", status, "url", url, "description", desc)
		c.metrics.IncUpstreamRequest(metrics.OutcomeTransient)
	}
	return err
}
