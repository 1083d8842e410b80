package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/form"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/BerylCAtieno/scheme-recommender/internal/render"
	"github.com/BerylCAtieno/scheme-recommender/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSubmitCmd() *cobra.Command {
	var (
		file    string
		sets    []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a profile and show the recommended schemes",
		Example: `  schemectl submit --file profile.yaml
  schemectl submit --set Objective="crop insurance" --set Demographics.Location=Punjab`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProfile(file)
			if err != nil {
				return err
			}
			p, err = applySets(p, sets)
			if err != nil {
				return err
			}

			log := cliLogger()
			client := form.NewClient(strings.TrimRight(baseURL, "/"), timeout, log)
			submitter := form.NewSubmitter(client, session.NewMemory(0), log)

			out := cmd.OutOrStdout()
			printHeader(out, "Scheme Recommender")
			fmt.Fprintf(out, "%sPOST %s%s%s\n\n", colorYellow, baseURL, form.SchemesPath, colorReset)

			resp, err := submitter.Submit(cmd.Context(), "cli", p)
			if err != nil {
				return err
			}
			return printView(out, render.NewRenderer().Render(resp))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON profile file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field update as Group.Name=value (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 waits indefinitely)")
	return cmd
}

// loadProfile reads a profile file. YAML is a superset of JSON so both work.
func loadProfile(path string) (models.Profile, error) {
	var p models.Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

func applySets(p models.Profile, sets []string) (models.Profile, error) {
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return p, fmt.Errorf("invalid --set %q, want Group.Name=value", s)
		}
		var err error
		if p, err = form.UpdateKey(p, strings.TrimSpace(key), value); err != nil {
			return p, err
		}
	}
	return p, nil
}
