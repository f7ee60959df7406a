package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/auth"
	"github.com/slidevault-labs/slidevault-cli/internal/connectors/figma"
	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the design service token",
	Long: `Store, inspect, and remove the personal access token used to call
the design service.

The token is looked up in this order:
  1. SLIDEVAULT_FIGMA_TOKEN or FIGMA_TOKEN environment variable
  2. figma.token in the config file

Without a token, exports return demo content with a warning.

Examples:
  # Store a token (prompted, input hidden)
  slidevault auth set-token

  # Store a token non-interactively
  slidevault auth set-token figd_xxx

  # Check which token source is active and whether it works
  slidevault auth status`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store a personal access token in the config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthSetToken,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active token source and verify it",
	RunE:  runAuthStatus,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token from the config file",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetToken(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		read, err := promptToken(cmd)
		if err != nil {
			return err
		}
		token = read
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	if err := configStore.Set(auth.ConfigTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	cmd.Printf("Token stored in %s\n", configStore.Path())
	for _, name := range auth.EnvVars {
		if os.Getenv(name) != "" {
			cmd.Printf("Note: %s is set and takes precedence over the config file.\n", name)
			break
		}
	}
	return nil
}

// promptToken reads the token without echoing when stdin is a
// terminal, and falls back to a plain line read when it is not
// (pipes, CI).
func promptToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("Personal access token: ")
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return line, nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if tokenProvider == nil {
		return errors.New("token provider not configured")
	}

	method := tokenProvider.Method()
	switch method {
	case domain.AuthMethodEnv:
		cmd.Println("Token source: environment variable")
	case domain.AuthMethodConfig:
		cmd.Printf("Token source: config file (%s)\n", configStore.Path())
	case domain.AuthMethodNone:
		cmd.Println("No token configured. Exports return demo content.")
		cmd.Println("Set one with: slidevault auth set-token")
		return nil
	default:
		cmd.Printf("Token source: %s\n", method)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	client := figma.NewClient(tokenProvider)
	cmd.Println(tokenCheckMessage(client.ValidateCredentials(ctx)))
	return nil
}

// tokenCheckMessage renders the outcome of a credential check. Rate
// limiting is transient and reported as such, not as a bad token.
func tokenCheckMessage(err error) string {
	switch {
	case err == nil:
		return "Token is valid."
	case figma.IsRateLimited(err):
		return "Token check rate limited by the service; try again shortly."
	case errors.Is(err, domain.ErrAuthInvalid):
		return "Token was rejected by the service. Store a new one with: slidevault auth set-token"
	default:
		return fmt.Sprintf("Token check failed: %v", err)
	}
}

func runAuthClear(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not available")
	}

	if configStore.GetString(auth.ConfigTokenKey) == "" {
		cmd.Println("No token stored in the config file.")
		return nil
	}

	if err := configStore.Set(auth.ConfigTokenKey, ""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	cmd.Println("Token removed from the config file.")
	return nil
}
