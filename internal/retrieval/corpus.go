// Package retrieval indexes a directory of government scheme documents and
// finds the passages most relevant to a profile, so recommendations are
// grounded in the corpus rather than in the model's memory alone.
package retrieval

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one cleaned scheme file. State is the name of the folder the
// file was found in.
type Document struct {
	State  string
	Source string
	Text   string
}

var corpusExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadCorpus reads every supported file one level below root, one folder per
// state:
//
//	root/delhi/ladli.txt
//	root/karnataka/gruha_jyothi.md
//
// Files directly in root and files with other extensions are skipped.
func LoadCorpus(root string) ([]Document, error) {
	states, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", root, err)
	}

	var docs []Document
	for _, state := range states {
		if !state.IsDir() {
			continue
		}
		dir := filepath.Join(root, state.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read state folder %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() || !corpusExts[strings.ToLower(filepath.Ext(f.Name()))] {
				continue
			}
			path := filepath.Join(dir, f.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			text := Clean(string(data))
			if text == "" {
				continue
			}
			docs = append(docs, Document{
				State:  state.Name(),
				Source: filepath.Join(state.Name(), f.Name()),
				Text:   text,
			})
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	return docs, nil
}

// Clean folds all runs of whitespace, newlines included, into single spaces.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
