package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Archived game commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesGetCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently completed games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get(fmt.Sprintf("/api/v1/games?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of games to list")

	return cmd
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a completed game round by round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameSummary

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the all-time leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Leaderboard

			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries")

	return cmd
}

func newPresenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presence <user-id>",
		Short: "Show which rooms a user is in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PresenceList

			if err := client.Get(fmt.Sprintf("/api/v1/presence/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
