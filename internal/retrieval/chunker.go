package retrieval

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// separators are tried in order; text with none of them is cut by length.
var separators = []string{"\n\n", "\n", ".", " "}

// Split breaks text into chunks of at most size characters. Consecutive
// chunks share up to overlap characters of trailing context. Text is split
// on the coarsest separator present first and only pieces that are still
// too long are split further.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return splitRecursive(text, separators, size, overlap)
}

func splitRecursive(text string, seps []string, size, overlap int) []string {
	if runeLen(text) <= size {
		return []string{text}
	}

	sep, rest := "", []string(nil)
	for i, s := range seps {
		if strings.Contains(text, s) {
			sep, rest = s, seps[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		pieces = cut(text, size)
	} else {
		for _, p := range strings.SplitAfter(text, sep) {
			if p != "" {
				pieces = append(pieces, p)
			}
		}
	}

	var chunks, fit []string
	for _, p := range pieces {
		if runeLen(p) <= size {
			fit = append(fit, p)
			continue
		}
		chunks = append(chunks, merge(fit, size, overlap)...)
		fit = nil
		chunks = append(chunks, splitRecursive(p, rest, size, overlap)...)
	}
	return append(chunks, merge(fit, size, overlap)...)
}

// merge packs pieces into chunks no longer than size, carrying the tail of
// each chunk (at most overlap characters) into the next.
func merge(pieces []string, size, overlap int) []string {
	var (
		chunks []string
		window []string
		total  int
	)
	for _, p := range pieces {
		n := runeLen(p)
		if total+n > size && len(window) > 0 {
			if c := strings.TrimSpace(strings.Join(window, "")); c != "" {
				chunks = append(chunks, c)
			}
			for len(window) > 0 && (total > overlap || total+n > size) {
				total -= runeLen(window[0])
				window = window[1:]
			}
		}
		window = append(window, p)
		total += n
	}
	if c := strings.TrimSpace(strings.Join(window, "")); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

// cut splits text into runs of size runes.
func cut(text string, size int) []string {
	var out []string
	for text != "" {
		i, n := 0, 0
		for i < len(text) && n < size {
			_, w := utf8.DecodeRuneInString(text[i:])
			i += w
			n++
		}
		out = append(out, text[:i])
		text = text[i:]
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
