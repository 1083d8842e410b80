// Package classifier splits a free-form scheme recommendation into central
// and state government scheme names.
//
// The split is a text heuristic keyed on headings the recommender is asked
// to produce. It is anchored on the central heading: a reply that only has a
// state section is left unclassified and is shown as plain markdown.
package classifier

import (
	"regexp"
	"strings"
)

// DisplayLimit is the number of schemes shown per list.
const DisplayLimit = 3

const (
	CentralLabel = "a. Central Government Schemes"
	StateLabel   = "b. State Government Schemes"
)

var (
	centralMarker    = regexp.MustCompile(`(?i)Central Government Schemes`)
	stateMarker      = regexp.MustCompile(`(?i)Government Schemes`)
	schemeNameMarker = regexp.MustCompile(`(?i)\*\*Scheme Name:\*\*`)
)

// Result holds the scheme names found in each block, in order of appearance.
type Result struct {
	Central []string `json:"central"`
	State   []string `json:"state"`
}

// Empty reports whether nothing was classified. Callers fall back to
// rendering the raw text in that case.
func (r Result) Empty() bool {
	return len(r.Central) == 0 && len(r.State) == 0
}

// Display returns a copy with both lists truncated to at most limit entries.
func (r Result) Display(limit int) Result {
	return Result{
		Central: truncate(r.Central, limit),
		State:   truncate(r.State, limit),
	}
}

// Extract classifies raw. It never fails; an unrecognised reply yields an
// empty Result.
func Extract(raw string) Result {
	var res Result
	if raw == "" {
		return res
	}

	parts := centralMarker.Split(raw, 2)
	if len(parts) < 2 {
		return res
	}

	// The state block ends at the next heading mentioning government
	// schemes, so a trailing summary never adds names to it.
	blocks := stateMarker.Split(parts[1], 3)
	res.Central = schemeNames(blocks[0])
	if len(blocks) > 1 {
		res.State = schemeNames(blocks[1])
	}
	return res
}

// schemeNames returns the first line of every segment following a
// "**Scheme Name:**" marker. Text before the first marker is ignored.
func schemeNames(block string) []string {
	if block == "" {
		return nil
	}
	segments := schemeNameMarker.Split(block, -1)
	if len(segments) < 2 {
		return nil
	}

	names := make([]string, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		line, _, _ := strings.Cut(strings.TrimSpace(seg), "\n")
		names = append(names, strings.TrimSpace(line))
	}
	return names
}

func truncate(names []string, limit int) []string {
	if limit < 0 || len(names) <= limit {
		return append([]string(nil), names...)
	}
	return append([]string(nil), names[:limit]...)
}
