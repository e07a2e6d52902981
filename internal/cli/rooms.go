package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/request"
	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
)

func newRoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomsListCmd())
	cmd.AddCommand(newRoomsGetCmd())
	cmd.AddCommand(newRoomsCreateCmd())

	return cmd
}

func newRoomsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.RoomList

			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Room

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomsCreateCmd() *cobra.Command {
	var req request.CreateRoomRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room hosted by the current token's user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Room

			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Room name (required)")
	cmd.Flags().IntVar(&req.MaxPlayers, "max-players", 8, "Maximum number of players")
	cmd.Flags().IntVar(&req.RoundDuration, "round-duration", 80, "Round duration in seconds")
	cmd.Flags().IntVar(&req.TotalRounds, "rounds", 0, "Total rounds (default: server default)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
