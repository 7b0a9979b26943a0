// Package gitrepo implements domain.RepositoryReader using go-git.
package gitrepo

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/revlist"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// Reader reads commits, tags and refs from a git repository.
type Reader struct {
	repo *git.Repository
}

// New wraps an already opened repository.
func New(repo *git.Repository) *Reader {
	return &Reader{repo: repo}
}

// Open opens the repository at gitDir. Bare repositories are the normal
// case on a hosting server.
func Open(gitDir string) (*Reader, error) {
	repo, err := git.PlainOpen(gitDir)
	if err != nil {
		return nil, fmt.Errorf("opening git repo %s: %w", gitDir, err)
	}
	return &Reader{repo: repo}, nil
}

// ResolveObject classifies the object behind hash. Annotated tags come back
// with their tagger and full message so the differ can synthesize a
// pseudo-commit for them.
func (r *Reader) ResolveObject(hash string) (domain.ResolvedObject, error) {
	obj, err := r.repo.Object(plumbing.AnyObject, plumbing.NewHash(hash))
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return domain.ResolvedObject{}, fmt.Errorf("%s: %w", hash, domain.ErrObjectNotFound)
	}
	if err != nil {
		return domain.ResolvedObject{}, fmt.Errorf("resolving %s: %w", hash, err)
	}

	switch o := obj.(type) {
	case *object.Tag:
		return domain.ResolvedObject{
			Kind: domain.ObjectKindTag,
			Tag: domain.TagInfo{
				Tagger:  domain.NewPerson(o.Tagger.Name, o.Tagger.Email),
				Message: o.Message,
			},
		}, nil
	case *object.Commit:
		return domain.ResolvedObject{Kind: domain.ObjectKindCommit}, nil
	default:
		return domain.ResolvedObject{Kind: domain.ObjectKindOther}, nil
	}
}

// ListBranchTips returns the hash of every ref under refs/heads.
func (r *Reader) ListBranchTips() ([]string, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing refs: %w", err)
	}

	var tips []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() == plumbing.HashReference && ref.Name().IsBranch() {
			tips = append(tips, ref.Hash().String())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating refs: %w", err)
	}

	return tips, nil
}

// CommitsReachableFromExcluding walks history from "to", stopping at
// anything reachable from the exclude hashes, and returns the commits found
// in walk order.
func (r *Reader) CommitsReachableFromExcluding(to string, exclude []string) ([]domain.Commit, error) {
	ignore := make([]plumbing.Hash, 0, len(exclude))
	for _, h := range exclude {
		ignore = append(ignore, plumbing.NewHash(h))
	}

	hashes, err := revlist.Objects(r.repo.Storer, []plumbing.Hash{plumbing.NewHash(to)}, ignore)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, fmt.Errorf("%s: %w", to, domain.ErrObjectNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("walking objects from %s: %w", to, err)
	}

	var commits []domain.Commit
	for _, h := range hashes {
		commit, err := r.repo.CommitObject(h)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			// revlist also reports trees and blobs; skip them.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", h, err)
		}

		// The committer ident, not the author: an external contributor's
		// patch is pushed by whoever applied it, and that person is the
		// one the identity policy should hold accountable.
		committer := domain.NewPerson(commit.Committer.Name, commit.Committer.Email)
		commits = append(commits, domain.NewCommit(h.String(), committer, commit.Message, commit.NumParents()))
	}

	return commits, nil
}
