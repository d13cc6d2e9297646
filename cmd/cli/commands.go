package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	league     string
	playerKeys []string
	teamKey    string
	scopeType  string
	week       int
)

func init() {
	statsCmd.Flags().StringVar(&league, "league", "", "League key or bare league id")
	statsCmd.Flags().StringSliceVar(&playerKeys, "player", nil, "Player key (repeatable)")
	statsCmd.Flags().StringVar(&scopeType, "type", "season", "Stat scope: season or week")
	statsCmd.Flags().IntVar(&week, "week", 0, "Week number when type is week")
	statsCmd.MarkFlagRequired("league")
	statsCmd.MarkFlagRequired("player")

	teamCmd.Flags().StringVar(&teamKey, "team", "", "Team key, e.g. 461.l.12345.t.3")
	teamCmd.Flags().IntVar(&week, "week", 0, "Week number for a weekly rollup")
	teamCmd.MarkFlagRequired("team")

	invalidateCmd.Flags().StringVar(&league, "league", "", "League key or bare league id")
	invalidateCmd.Flags().StringSliceVar(&playerKeys, "player", nil, "Player key (repeatable)")
	invalidateCmd.Flags().StringVar(&scopeType, "type", "season", "Stat scope: season or week")
	invalidateCmd.Flags().IntVar(&week, "week", 0, "Week number when type is week")
	invalidateCmd.MarkFlagRequired("league")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(invalidateCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetch enriched stats for one or more players",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("league", league)
		for _, pk := range playerKeys {
			params.Add("player_key", pk)
		}
		params.Set("type", scopeType)
		if week > 0 {
			params.Set("week", fmt.Sprintf("%d", week))
		}
		return performGetRequest("/players/stats", params)
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Fetch a roster rollup for a team",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("team_key", teamKey)
		if week > 0 {
			params.Set("week", fmt.Sprintf("%d", week))
		}
		return performGetRequest("/team/stats", params)
	},
}

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Evict cached stats for a league scope or specific players",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("league", league)
		for _, pk := range playerKeys {
			params.Add("player_key", pk)
		}
		params.Set("type", scopeType)
		if week > 0 {
			params.Set("week", fmt.Sprintf("%d", week))
		}
		return performGetRequest("/invalidate", params)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func performGetRequest(endpoint string, params url.Values) error {
	u := host + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", u)

	resp, err := http.Get(u)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
