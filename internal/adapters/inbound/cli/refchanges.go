package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// ParseRefChanges reads the pre-receive stdin protocol: one
// "<old-hash> <new-hash> <ref-name>" line per ref update.
func ParseRefChanges(r io.Reader) ([]domain.RefChange, error) {
	var changes []domain.RefChange

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed ref update line: %q", line)
		}

		from, to, refID := fields[0], fields[1], fields[2]

		changes = append(changes, domain.RefChange{
			RefID:    refID,
			FromHash: from,
			ToHash:   to,
			Type:     changeType(from, to),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ref updates: %w", err)
	}

	return changes, nil
}

func changeType(from, to string) domain.ChangeType {
	switch {
	case isZeroHash(from):
		return domain.ChangeTypeAdd
	case isZeroHash(to):
		return domain.ChangeTypeDelete
	default:
		return domain.ChangeTypeUpdate
	}
}

func isZeroHash(h string) bool {
	return strings.Trim(h, "0") == ""
}
