// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/hub"
	"github.com/pdiddy/spacecard/internal/secrets"
	"github.com/pdiddy/spacecard/pkg/types"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Inspect deployed Spaces on the Hub",
	Long: `Hub talks to the Hub API about deployed Spaces. The API token is read
from --token, the hub.token config key, or the hf-token secret, in that
order. Public Spaces need no token.`,
}

var hubStatusCmd = &cobra.Command{
	Use:   "status <owner/space>",
	Short: "Show the deployment state of a Space",
	Args:  cobra.ExactArgs(1),
	RunE:  runHubStatus,
}

var hubDiffCmd = &cobra.Command{
	Use:   "diff <owner/space> [path]",
	Short: "Compare the local card with the deployed one",
	Long: `Diff fetches the card the Hub recorded at deployment time and compares
it field by field with the local README's card. Fields the Hub did not
report are skipped. Exits non-zero when the cards have drifted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runHubDiff,
}

func init() {
	hubCmd.PersistentFlags().String("endpoint", "", "hub API endpoint (default https://huggingface.co)")
	hubCmd.PersistentFlags().String("token", "", "hub API token (default: hub.token config key or the hf-token secret)")
	hubCmd.PersistentFlags().Duration("timeout", 0, "request timeout (default 30s)")

	hubStatusCmd.Flags().Bool("json", false, "output as JSON")

	hubCmd.AddCommand(hubStatusCmd)
	hubCmd.AddCommand(hubDiffCmd)

	rootCmd.AddCommand(hubCmd)
}

// hubConfig assembles the client config from flags, config file, and secrets.
func hubConfig(cmd *cobra.Command) types.HubConfig {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = viper.GetString("hub.endpoint")
	}
	if endpoint == "" {
		endpoint = loadedSecrets[secrets.EndpointKey]
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = viper.GetString("hub.token")
	}
	if token == "" {
		token = loadedSecrets[secrets.TokenKey]
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("hub.timeout")
	}

	return types.HubConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout},
		Endpoint:   endpoint,
		Token:      token,
	}
}

func runHubStatus(cmd *cobra.Command, args []string) error {
	client := hub.NewClient(hubConfig(cmd))

	info, err := client.Space(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("Space:   %s\n", info.ID)
	fmt.Printf("SDK:     %s\n", info.SDK)
	fmt.Printf("Stage:   %s\n", info.Stage)
	fmt.Printf("Private: %t\n", info.Private)
	fmt.Printf("Likes:   %d\n", info.Likes)
	return nil
}

func runHubDiff(cmd *cobra.Command, args []string) error {
	readme, _, err := resolveReadme(args[1:])
	if err != nil {
		return err
	}

	doc, err := card.Load(readme)
	if err != nil {
		return err
	}

	client := hub.NewClient(hubConfig(cmd))
	info, err := client.Space(context.Background(), args[0])
	if err != nil {
		return err
	}

	lines := hub.Diff(doc.Card, info)
	if len(lines) == 0 {
		fmt.Printf("%s matches %s\n", readme, info.ID)
		return nil
	}

	for _, line := range lines {
		fmt.Println(line)
	}
	return fmt.Errorf("%s has drifted from %s in %d field(s)", readme, info.ID, len(lines))
}
