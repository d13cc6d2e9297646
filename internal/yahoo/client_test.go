package yahoo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarinudom/blitzgremlin/internal/credentials"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
)

// stubResolver returns a fixed mapping, standing in for the settings-backed
// resolver.
type stubResolver struct {
	names map[string]string
}

func (s stubResolver) Resolve(ctx context.Context, league LeagueKey) map[string]string {
	return s.names
}

func newTestClient(provider credentials.Provider, names map[string]string) *Client {
	return NewClient(provider, XMLDecoder{}, stubResolver{names: names}, metrics.NewMock(), "461")
}

func TestClientNormalizeLeague(t *testing.T) {
	c := newTestClient(credentials.NewMockProvider(), nil)
	assert.Equal(t, LeagueKey("461.l.12345"), c.NormalizeLeague("12345"))
	assert.Equal(t, LeagueKey("461.l.12345"), c.NormalizeLeague("461.l.12345"))
}

func TestClientFetchManyEnriches(t *testing.T) {
	provider := credentials.NewMockProvider()
	provider.AuthenticatedGetFunc = func(ctx context.Context, url string) ([]byte, int, error) {
		return []byte(twoPlayerStatsXML), 200, nil
	}
	c := newTestClient(provider, map[string]string{"4": "Pass Yds", "9": "Rush Yds"})

	results, err := c.FetchMany(context.Background(), "461.l.12345", []PlayerKey{"461.p.30977", "461.p.40899"}, SeasonScope())
	require.NoError(t, err)
	require.Len(t, results, 2)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://fantasysports.yahooapis.com/fantasy/v2/league/461.l.12345/players;player_keys=461.p.30977,461.p.40899/stats", calls[0])

	first := results[0]
	assert.Equal(t, PlayerKey("461.p.30977"), first.Player)
	assert.Equal(t, LeagueKey("461.l.12345"), first.League)
	assert.Equal(t, SeasonScope(), first.Scope)
	require.Len(t, first.Stats, 3)
	assert.Equal(t, StatEntry{StatID: "4", StatName: "Pass Yds", Value: "4183"}, first.Stats[0])
	assert.Equal(t, "-", first.Stats[2].Value)

	assert.Equal(t, StatEntry{StatID: "9", StatName: "Rush Yds", Value: "1456"}, results[1].Stats[0])
}

func TestClientFetchOneWeekScopeURL(t *testing.T) {
	provider := credentials.NewMockProvider()
	provider.AuthenticatedGetFunc = func(ctx context.Context, url string) ([]byte, int, error) {
		return []byte(onePlayerStatsXML), 200, nil
	}
	c := newTestClient(provider, nil)

	_, err := c.FetchOne(context.Background(), "461.l.12345", "461.p.30977", WeekScope(5))
	require.NoError(t, err)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://fantasysports.yahooapis.com/fantasy/v2/league/461.l.12345/players;player_keys=461.p.30977/stats;type=week;week=5", calls[0])
}

func TestClientFetchOneNoPlayerEntry(t *testing.T) {
	provider := credentials.NewMockProvider()
	provider.AuthenticatedGetFunc = func(ctx context.Context, url string) ([]byte, int, error) {
		return []byte(`<fantasy_content><league><league_key>461.l.12345</league_key></league></fantasy_content>`), 200, nil
	}
	c := newTestClient(provider, nil)

	_, err := c.FetchOne(context.Background(), "461.l.12345", "461.p.30977", SeasonScope())
	assert.True(t, IsMalformed(err))
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		err    error
		check  func(t *testing.T, err error)
	}{
		{
			name: "auth failure is fatal",
			err:  &credentials.AuthError{Err: errors.New("token expired")},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthenticated)
			},
		},
		{
			name: "transport failure is transient",
			err:  errors.New("connection refused"),
			check: func(t *testing.T, err error) {
				var transient *TransientError
				assert.ErrorAs(t, err, &transient)
			},
		},
		{
			name:   "server error is transient",
			body:   "Internal Server Error",
			status: 500,
			check: func(t *testing.T, err error) {
				var transient *TransientError
				assert.ErrorAs(t, err, &transient)
			},
		},
		{
			name:   "rejection body on 400",
			body:   `<error><description>Player key 461.p.99999 does not exist.</description></error>`,
			status: 400,
			check: func(t *testing.T, err error) {
				assert.True(t, IsRejected(err))
			},
		},
		{
			name:   "rejection body on 200",
			body:   `<fantasy_content><error><description>Invalid league key</description></error></fantasy_content>`,
			status: 200,
			check: func(t *testing.T, err error) {
				assert.True(t, IsRejected(err))
			},
		},
		{
			name:   "unrecognized error body is transient",
			body:   `<error><description>Request denied</description></error>`,
			status: 200,
			check: func(t *testing.T, err error) {
				var transient *TransientError
				assert.ErrorAs(t, err, &transient)
				assert.False(t, IsRejected(err))
			},
		},
		{
			name:   "undecodable body is malformed",
			body:   "not xml at all",
			status: 200,
			check: func(t *testing.T, err error) {
				assert.True(t, IsMalformed(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := credentials.NewMockProvider()
			provider.AuthenticatedGetFunc = func(ctx context.Context, url string) ([]byte, int, error) {
				if tt.err != nil {
					return nil, 0, tt.err
				}
				return []byte(tt.body), tt.status, nil
			}
			c := newTestClient(provider, nil)

			_, err := c.FetchMany(context.Background(), "461.l.12345", []PlayerKey{"461.p.30977"}, SeasonScope())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClientFetchRoster(t *testing.T) {
	provider := credentials.NewMockProvider()
	provider.AuthenticatedGetFunc = func(ctx context.Context, url string) ([]byte, int, error) {
		return []byte(rosterXML), 200, nil
	}
	c := newTestClient(provider, nil)

	slots, err := c.FetchRoster(context.Background(), "461.l.12345.t.3")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, PlayerKey("461.p.30977"), slots[0].Player)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://fantasysports.yahooapis.com/fantasy/v2/team/461.l.12345.t.3/roster", calls[0])
}
