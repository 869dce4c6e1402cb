package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zanachka/quickpin-api/pkg/client"
)

var (
	flagAuthUser     string
	flagAuthPassword string
)

func init() {
	authenticateCmd.Flags().StringVar(&flagAuthUser, "username", "", "Account username (default $QUICKPIN_USER)")
	authenticateCmd.Flags().StringVar(&flagAuthPassword, "password", "", "Account password (default $QUICKPIN_PASSWORD)")
	rootCmd.AddCommand(authenticateCmd)
}

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Exchange credentials for an API token",
	Long: `Exchange a username/password pair for an API token and print it.

The token can then be exported as QUICKPIN_TOKEN so later invocations skip
the login exchange entirely.`,
	Args: cobra.NoArgs,
	RunE: runAuthenticate,
}

func runAuthenticate(cmd *cobra.Command, args []string) error {
	baseURL := flagURL
	if baseURL == "" {
		baseURL = os.Getenv(envURL)
	}
	if baseURL == "" {
		baseURL = promptString("QuickPin URL")
	}
	if baseURL == "" {
		exitWithError(ExitConfigError, "no QuickPin URL configured (set %s or pass --url)", envURL)
	}

	username := flagAuthUser
	if username == "" {
		username = os.Getenv(envUser)
	}
	if username == "" {
		username = promptString("Username")
	}

	password := flagAuthPassword
	if password == "" {
		password = os.Getenv(envPassword)
	}
	if password == "" {
		password = promptPassword("Password")
	}

	ctx, cancel := commandContext()
	defer cancel()

	cfg := client.DefaultConfig(baseURL)
	cfg.InsecureSkipVerify = flagInsecure
	cfg.Username = username
	cfg.Password = password

	token, err := client.ResolveToken(ctx, cfg)
	if err != nil {
		if client.IsAuthentication(err) {
			exitWithError(ExitAuthError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("Token obtained, now set the QUICKPIN_TOKEN environment variable:\n")
	fmt.Printf("export QUICKPIN_TOKEN=%q\n", token)
	return nil
}
