package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/coaching-backend/internal/auth"
	"github.com/heartmarshall/coaching-backend/internal/config"
	"github.com/heartmarshall/coaching-backend/internal/domain"
)

var (
	tokenActor string
	tokenRole  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a coach or admin",
	Long: `Issue a signed access token for the given actor.

Used to bootstrap the first admin and for local testing. The token expires
after AUTH_ACCESS_TOKEN_TTL.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		token, err := issueToken(cfg.Auth, tokenActor, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenActor, "actor", "", "actor UUID (default: a new random id)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(domain.UserRoleCoach), "role: coach or admin")
}

func issueToken(authCfg config.AuthConfig, actor, role string) (string, error) {
	r := domain.UserRole(role)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q: want coach or admin", role)
	}

	id := uuid.New()
	if actor != "" {
		parsed, err := uuid.Parse(actor)
		if err != nil {
			return "", fmt.Errorf("invalid actor id: %w", err)
		}
		id = parsed
	}

	jwt := auth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)
	return jwt.GenerateAccessToken(id, r)
}
