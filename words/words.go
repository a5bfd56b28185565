// Package words owns the master word corpus the board is sampled from.
package words

import (
	"bufio"
	_ "embed"
	"os"
	"strings"
)

//go:embed words.txt
var defaultCorpus string

// Default returns the built-in master word list. The returned slice is a
// fresh copy per call, callers may reorder it freely.
func Default() []string {
	lines := strings.Split(strings.TrimSpace(defaultCorpus), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		word := strings.TrimSpace(line)
		if word != "" {
			out = append(out, strings.ToUpper(word))
		}
	}
	return out
}

// LoadFile reads a newline-separated word list from disk. Blank lines and
// lines starting with '#' are skipped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		out = append(out, strings.ToUpper(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
