package domain

import (
	"regexp"
	"strings"
)

// Git ref namespaces relevant to validation.
const (
	BranchRefPrefix = "refs/heads/"
	TagRefPrefix    = "refs/tags/"
)

// ChangeType identifies what a ref update does to the ref.
type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "ADD"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// RefChange is one requested ref update within a push.
type RefChange struct {
	RefID    string
	FromHash string
	ToHash   string
	Type     ChangeType
}

// IsBranch reports whether the ref lives under the branch namespace.
func (rc RefChange) IsBranch() bool {
	return strings.HasPrefix(rc.RefID, BranchRefPrefix)
}

// IsTag reports whether the ref lives under the tag namespace.
func (rc RefChange) IsTag() bool {
	return strings.HasPrefix(rc.RefID, TagRefPrefix)
}

// BranchName returns the short branch name, or "" for non-branch refs.
func (rc RefChange) BranchName() string {
	if !rc.IsBranch() {
		return ""
	}
	return strings.TrimPrefix(rc.RefID, BranchRefPrefix)
}

// Person is a git ident as recorded on a commit or tag.
type Person struct {
	Name  string
	Email string
}

// NewPerson builds a Person, stripping leading/trailing ident crud from the
// name the same way git does when it writes an ident (see
// strbuf_addstr_without_crud in git's ident.c). Without this, a name that
// contains crud characters could never match the name git actually records.
func NewPerson(name, email string) Person {
	return Person{Name: RemoveGitCrud(name), Email: email}
}

var (
	identSpecialChars = regexp.MustCompile("[<>\n]")
	leadingCrud       = regexp.MustCompile(`^[\\.,:;"']*`)
	trailingCrud      = regexp.MustCompile(`[\\.,:;"']*$`)
)

// RemoveGitCrud removes the characters git silently strips from idents:
// angle brackets and newlines anywhere, plus leading and trailing
// backslash, dot, comma, colon, semicolon, and quote characters.
func RemoveGitCrud(name string) string {
	name = identSpecialChars.ReplaceAllString(name, "")
	name = leadingCrud.ReplaceAllString(name, "")
	name = trailingCrud.ReplaceAllString(name, "")
	return name
}

// Commit is the minimal commit metadata the validation pipeline consumes.
type Commit struct {
	ID          string
	Committer   Person
	Message     string
	ParentCount int
}

// NewCommit builds a Commit, stripping a single trailing newline from the
// message. Raw git commit objects carry one, while policy regexes are
// written against the message as the author typed it.
func NewCommit(id string, committer Person, message string, parentCount int) Commit {
	return Commit{
		ID:          id,
		Committer:   committer,
		Message:     strings.TrimSuffix(message, "\n"),
		ParentCount: parentCount,
	}
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool { return c.ParentCount > 1 }

// User is the authenticated principal performing the push. Service
// principals (deploy keys, bots) are exempt from identity checks.
type User struct {
	Name      string
	Email     string
	IsService bool
}
