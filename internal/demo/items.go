// Package demo is the interactive showcase for scrollto: a virtualized
// list of items you can jump around in by logical index, fed either from
// a file on disk or from generated content.
package demo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFeed reads the item feed at path, one item per line. Blank lines
// are kept so feed line numbers and item indices stay aligned.
func LoadFeed(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer func() { _ = f.Close() }()

	var items []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return items, nil
}

// GenerateItems produces n synthetic items with varied heights, so
// estimated and measured geometry genuinely differ while scrolling.
func GenerateItems(n int) []string {
	if n < 0 {
		n = 0
	}
	items := make([]string, n)
	for i := range items {
		switch {
		case i%25 == 0:
			items[i] = fmt.Sprintf("── section %d ──\n", i/25) +
				strings.Repeat("·", 24)
		case i%7 == 0:
			items[i] = fmt.Sprintf("entry %d\n  a second line with more detail", i)
		default:
			items[i] = fmt.Sprintf("entry %d", i)
		}
	}
	return items
}
