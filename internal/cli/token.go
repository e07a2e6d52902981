package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
)

// TokenResult is a freshly minted token
type TokenResult struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development token commands",
	}

	cmd.AddCommand(newTokenMintCmd())

	return cmd
}

func newTokenMintCmd() *cobra.Command {
	var (
		userID string
		name   string
		issuer string
		ttl    time.Duration
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a token the server accepts",
		Long: `Sign an HS256 token with the server's shared secret.

The secret comes from --secret or DRAWSYN_JWT_SECRET and falls back to the
development default. Use --save to store the token in the token file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clk := clock.New()
			token, err := identity.NewSigner(cfg.Identity(issuer, ttl), clk).Sign(model.UserID(userID), name)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			if save {
				if err := cfg.SaveToken(token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			NewOutput(cfg.Output).Print(TokenResult{
				Token:     token,
				UserID:    userID,
				Name:      name,
				ExpiresAt: clk.Now().Add(ttl).UTC().Truncate(time.Second),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id placed in the subject claim (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&cfg.JWTSecret, "secret", cfg.JWTSecret, "Signing secret (env: DRAWSYN_JWT_SECRET)")
	cmd.Flags().StringVar(&issuer, "issuer", identity.DefaultConfig().Issuer, "Issuer claim")
	cmd.Flags().DurationVar(&ttl, "ttl", identity.DefaultConfig().TokenTTL, "Token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "Save the token to the token file")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
