// Package catalog reads term/definition files into a domain.Catalog.
//
// The format is line oriented:
//
//	# Unit name
//	## Subtopic name
//	Term
//	Definition
//
// A term's definition is the next non-blank line. A term followed by a unit
// header (or by the end of input) is dropped.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/flashbox/internal/domain"
)

const (
	unitPrefix     = "# "
	subtopicPrefix = "## "
)

// ParseStats describes anomalies skipped while parsing.
type ParseStats struct {
	Cards          int
	DroppedTerms   int // terms without a usable definition
	DuplicateTerms int // repeated identities within a subtopic
	OrphanLines    int // content before any unit/subtopic header
}

// Parse reads a catalog. Malformed entries are skipped, never fatal; only
// read errors are returned.
func Parse(r io.Reader) (*domain.Catalog, error) {
	cat, _, err := ParseWithStats(r)
	return cat, err
}

// ParseWithStats is Parse plus a tally of skipped entries.
func ParseWithStats(r io.Reader) (*domain.Catalog, ParseStats, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, ParseStats{}, err
	}

	var (
		stats = ParseStats{}
		cat   = domain.NewCatalog()
		unit  *domain.Unit
		sub   *domain.Subtopic
	)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, unitPrefix) {
			unit = cat.EnsureUnit(strings.TrimSpace(line[len(unitPrefix):]))
			sub = nil
			continue
		}

		if strings.HasPrefix(line, subtopicPrefix) {
			name := strings.TrimSpace(line[len(subtopicPrefix):])
			if unit == nil {
				stats.OrphanLines++
				continue
			}
			sub = unit.EnsureSubtopic(name)
			continue
		}

		if unit == nil || sub == nil {
			stats.OrphanLines++
			continue
		}

		term := strings.TrimSpace(line)
		defIdx := nextNonBlank(lines, i+1)
		if defIdx < 0 {
			stats.DroppedTerms++
			continue
		}
		def := strings.TrimSpace(lines[defIdx])
		if strings.HasPrefix(def, unitPrefix) {
			// Leave the header for the next iteration.
			stats.DroppedTerms++
			continue
		}

		card, err := domain.NewCard(unit.Name, sub.Name, term, def)
		if err != nil {
			stats.DroppedTerms++
		} else if sub.Add(domain.Card{Term: card.Term, Def: card.Def}) {
			stats.Cards++
		} else {
			stats.DuplicateTerms++
		}
		i = defIdx
	}

	return cat, stats, nil
}

// readLines splits r into lines without a length limit; a definition may be
// arbitrarily long.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
	}
}

func nextNonBlank(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}
