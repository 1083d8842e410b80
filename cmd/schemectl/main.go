package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/render"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

var (
	baseURL string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "schemectl",
		Short:        "Query a scheme recommender from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the scheme service")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests")

	root.AddCommand(newSubmitCmd(), newClassifyCmd(), newHealthCmd(), newIngestCmd())
	return root
}

func cliLogger() logger.Logger {
	if verbose {
		return logger.NewStructured("debug", "console")
	}
	return logger.NewNoOpLogger()
}

// renderMarkdown renders src for the terminal, falling back to the raw text.
func renderMarkdown(src string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return out
}

func printHeader(w io.Writer, text string) {
	fmt.Fprintf(w, "\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Fprintf(w, "%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Fprintf(w, "%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printSuccess(w io.Writer, text string) {
	fmt.Fprintf(w, "%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(w io.Writer, text string) {
	fmt.Fprintf(w, "%s✗ %s%s\n", colorRed, text, colorReset)
}

// printView writes the results region of v: the error line, the capped
// scheme lists, or the raw reply rendered as terminal markdown.
func printView(w io.Writer, v render.View) error {
	switch {
	case v.Error != "":
		printError(w, v.Error)
		return fmt.Errorf("request failed")
	case v.Classified():
		printSuccess(w, "Schemes found")
		fmt.Fprintf(w, "\n%s%s%s", colorCyan, v.Text(), colorReset)
	default:
		fmt.Fprint(w, renderMarkdown(v.Raw))
	}
	return nil
}
