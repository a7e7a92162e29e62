// Package wordlist loads keyword-override files for the classifier.
//
// Override sources are line-oriented text: one keyword per line,
// blank lines and lines starting with '#' ignored, everything else
// lowercased.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads one keyword file. The returned keywords are lowercased,
// trimmed, and deduplicated, in file order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	keywords := make([]string, 0, 32)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word := strings.ToLower(line)
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}

	return keywords, nil
}

// FindCategoryFiles maps category names onto "<category>.txt" files
// in dir. Categories without a file are absent from the result; a
// missing directory yields an error the caller treats as recoverable.
func FindCategoryFiles(dir string, categories []string) (map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("wordlist directory: %w", err)
	}

	files := make(map[string]string, len(categories))
	for _, cat := range categories {
		path := filepath.Join(dir, cat+".txt")
		if _, err := os.Stat(path); err == nil {
			files[cat] = path
		}
	}
	return files, nil
}
