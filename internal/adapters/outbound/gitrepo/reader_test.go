package gitrepo_test

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yellingatcode/yet-another-commit-checker/internal/adapters/outbound/gitrepo"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

type testRepo struct {
	t    *testing.T
	repo *git.Repository
	fs   billy.Filesystem
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	return &testRepo{t: t, repo: repo, fs: fs}
}

func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	r.seq++

	name := "file.txt"
	require.NoError(r.t, util.WriteFile(r.fs, name, []byte(message), 0o644))

	w, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = w.Add(name)
	require.NoError(r.t, err)

	sig := &object.Signature{
		Name:  "John Doe",
		Email: "jdoe@example.com",
		When:  time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC),
	}
	hash, err := w.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) branch(name string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	require.NoError(r.t, r.repo.Storer.SetReference(ref))
}

func TestResolveObject(t *testing.T) {
	r := newTestRepo(t)
	commitHash := r.commit("some change\n")

	reader := gitrepo.New(r.repo)

	t.Run("commit", func(t *testing.T) {
		obj, err := reader.ResolveObject(commitHash.String())
		require.NoError(t, err)
		assert.Equal(t, domain.ObjectKindCommit, obj.Kind)
	})

	t.Run("annotated tag", func(t *testing.T) {
		ref, err := r.repo.CreateTag("v1.0", commitHash, &git.CreateTagOptions{
			Tagger: &object.Signature{
				Name:  "Jane Smith",
				Email: "jane@example.com",
				When:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			Message: "release v1.0",
		})
		require.NoError(t, err)

		obj, err := reader.ResolveObject(ref.Hash().String())
		require.NoError(t, err)
		assert.Equal(t, domain.ObjectKindTag, obj.Kind)
		assert.Equal(t, "Jane Smith", obj.Tag.Tagger.Name)
		assert.Equal(t, "jane@example.com", obj.Tag.Tagger.Email)
		assert.Contains(t, obj.Tag.Message, "release v1.0")
	})

	t.Run("lightweight tag points straight at the commit", func(t *testing.T) {
		ref, err := r.repo.CreateTag("v1.0-light", commitHash, nil)
		require.NoError(t, err)

		obj, err := reader.ResolveObject(ref.Hash().String())
		require.NoError(t, err)
		assert.Equal(t, domain.ObjectKindCommit, obj.Kind)
	})

	t.Run("tree", func(t *testing.T) {
		commit, err := r.repo.CommitObject(commitHash)
		require.NoError(t, err)

		obj, err := reader.ResolveObject(commit.TreeHash.String())
		require.NoError(t, err)
		assert.Equal(t, domain.ObjectKindOther, obj.Kind)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := reader.ResolveObject("0123456789abcdef0123456789abcdef01234567")
		require.ErrorIs(t, err, domain.ErrObjectNotFound)
	})
}

func TestListBranchTips(t *testing.T) {
	r := newTestRepo(t)
	c1 := r.commit("first\n")
	r.branch("base", c1)
	c2 := r.commit("second\n")

	reader := gitrepo.New(r.repo)

	tips, err := reader.ListBranchTips()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{c1.String(), c2.String()}, tips)
}

func TestCommitsReachableFromExcluding(t *testing.T) {
	r := newTestRepo(t)
	c1 := r.commit("first\n")
	c2 := r.commit("second\n")
	c3 := r.commit("third\n")

	reader := gitrepo.New(r.repo)

	t.Run("nothing excluded returns full history", func(t *testing.T) {
		commits, err := reader.CommitsReachableFromExcluding(c3.String(), nil)
		require.NoError(t, err)

		ids := make([]string, 0, len(commits))
		for _, c := range commits {
			ids = append(ids, c.ID)
		}
		assert.ElementsMatch(t, []string{c1.String(), c2.String(), c3.String()}, ids)
	})

	t.Run("excluded ancestors are cut off", func(t *testing.T) {
		commits, err := reader.CommitsReachableFromExcluding(c3.String(), []string{c1.String()})
		require.NoError(t, err)

		ids := make([]string, 0, len(commits))
		for _, c := range commits {
			ids = append(ids, c.ID)
		}
		assert.ElementsMatch(t, []string{c2.String(), c3.String()}, ids)
	})

	t.Run("excluding the tip itself yields nothing", func(t *testing.T) {
		commits, err := reader.CommitsReachableFromExcluding(c3.String(), []string{c3.String()})
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("commit metadata is mapped", func(t *testing.T) {
		commits, err := reader.CommitsReachableFromExcluding(c3.String(), []string{c2.String()})
		require.NoError(t, err)

		require.Len(t, commits, 1)
		assert.Equal(t, c3.String(), commits[0].ID)
		assert.Equal(t, "John Doe", commits[0].Committer.Name)
		assert.Equal(t, "jdoe@example.com", commits[0].Committer.Email)
		assert.Equal(t, "third", commits[0].Message)
		assert.False(t, commits[0].IsMerge())
	})

	t.Run("missing tip", func(t *testing.T) {
		_, err := reader.CommitsReachableFromExcluding("0123456789abcdef0123456789abcdef01234567", nil)
		require.ErrorIs(t, err, domain.ErrObjectNotFound)
	})
}
