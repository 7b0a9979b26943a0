package application

import (
	"fmt"
	"log/slog"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// CommitsService computes the commits newly introduced by a ref change: the
// ones a validator has to look at, excluding history already reachable from
// some other branch.
type CommitsService struct {
	repo domain.RepositoryReader
}

// NewCommitsService creates a CommitsService over a repository reader.
func NewCommitsService(repo domain.RepositoryReader) *CommitsService {
	return &CommitsService{repo: repo}
}

// NewCommits returns the commits introduced by refChange, in a deterministic
// order with no duplicates. Deletes introduce nothing. Tag refs are special:
// a lightweight tag points at a commit that already exists elsewhere and was
// validated when originally pushed, so it yields nothing; an annotated tag
// yields a single pseudo-commit carrying the tag's tagger and message so the
// same pipeline can validate tag metadata.
func (s *CommitsService) NewCommits(refChange domain.RefChange) ([]domain.Commit, error) {
	if refChange.Type == domain.ChangeTypeDelete {
		return nil, nil
	}

	if refChange.IsTag() {
		return s.tagCommit(refChange)
	}

	tips, err := s.repo.ListBranchTips()
	if err != nil {
		return nil, fmt.Errorf("listing branch tips: %w", err)
	}

	commits, err := s.repo.CommitsReachableFromExcluding(refChange.ToHash, tips)
	if err != nil {
		return nil, fmt.Errorf("walking commits for %s: %w", refChange.RefID, err)
	}

	slog.Debug("computed new commits",
		"ref", refChange.RefID, "to", refChange.ToHash, "count", len(commits))

	return dedupe(commits), nil
}

func (s *CommitsService) tagCommit(refChange domain.RefChange) ([]domain.Commit, error) {
	obj, err := s.repo.ResolveObject(refChange.ToHash)
	if err != nil {
		return nil, fmt.Errorf("resolving tag object %s: %w", refChange.ToHash, err)
	}

	if obj.Kind != domain.ObjectKindTag {
		// Lightweight tag, nothing new to check.
		return nil, nil
	}

	commit := domain.NewCommit(refChange.ToHash, obj.Tag.Tagger, obj.Tag.Message, 1)
	return []domain.Commit{commit}, nil
}

func dedupe(commits []domain.Commit) []domain.Commit {
	seen := make(map[string]bool, len(commits))
	out := commits[:0]
	for _, c := range commits {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
