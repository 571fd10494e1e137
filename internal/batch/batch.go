// Package batch reads and writes the line based files used by
// `easynmt --batch`.
package batch

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one line of a batch file.
type Entry struct {
	Text        string
	Translation string
}

// Translated reports whether the entry already carries a translation.
func (e Entry) Translated() bool {
	return e.Translation != ""
}

// ReadBatchFile reads texts from a file, one per line. Supported formats:
//   - text only: "Transparent" (will be translated)
//   - with translation: "Transparent = 透明" (kept as is)
//
// Blank lines and lines without text before the "=" are skipped, so the
// output of WriteResults can be fed back in.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		text, translation, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, Entry{Text: line})
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		entries = append(entries, Entry{
			Text:        text,
			Translation: strings.TrimSpace(translation),
		})
	}

	return entries, nil
}

// WriteResults writes translated entries as "text = translation" lines in
// the given order. Entries without a translation are left out.
func WriteResults(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		if !entry.Translated() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", entry.Text, entry.Translation); err != nil {
			return fmt.Errorf("failed to write result for %q: %w", entry.Text, err)
		}
	}
	return nil
}
