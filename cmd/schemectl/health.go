package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the scheme service is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			url := strings.TrimRight(baseURL, "/") + "/health"
			fmt.Fprintf(out, "GET %s\n", url)

			client := &http.Client{Timeout: 10 * time.Second}
			resp, err := client.Get(url)
			if err != nil {
				printError(out, fmt.Sprintf("Request failed: %v", err))
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK || string(body) != "OK" {
				printError(out, fmt.Sprintf("Unexpected response %d: %s", resp.StatusCode, string(body)))
				return fmt.Errorf("unhealthy")
			}

			printSuccess(out, "Health check passed")
			return nil
		},
	}
}
