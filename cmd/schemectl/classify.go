package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BerylCAtieno/scheme-recommender/internal/classifier"
	"github.com/BerylCAtieno/scheme-recommender/internal/render"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Split a saved recommender reply into central and state schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			res := classifier.Extract(raw)
			if !all {
				res = res.Display(classifier.DisplayLimit)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printView(cmd.OutOrStdout(), render.View{
				CentralLabel: classifier.CentralLabel,
				StateLabel:   classifier.StateLabel,
				Central:      res.Central,
				State:        res.State,
				Raw:          raw,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File holding the raw reply (stdin when empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the classification as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "Do not cap the lists")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
