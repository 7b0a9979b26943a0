package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
	"github.com/yellingatcode/yet-another-commit-checker/internal/domain/report"
)

func TestRender_DefaultHeader(t *testing.T) {
	builder := report.NewBuilder(domain.DefaultSettings())

	out := builder.Render([]domain.ValidationError{
		domain.NewValidationError("first error"),
	})

	assert.True(t, strings.HasPrefix(out, report.DefaultHeader+"\n\n"))
	assert.Contains(t, out, "Push rejected.")
	assert.Contains(t, out, "first error\n")
}

func TestRender_CustomHeaderAndFooter(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ErrorMessageHeader = "== policy violation =="
	settings.ErrorMessageFooter = "see https://wiki.example.com/push-policy"

	out := report.NewBuilder(settings).Render([]domain.ValidationError{
		domain.NewValidationError("first error"),
		domain.NewValidationError("second error"),
	})

	assert.Equal(t,
		"== policy violation ==\n\n"+
			"first error\n"+
			"second error\n"+
			"\n"+
			"see https://wiki.example.com/push-policy\n\n",
		out)
}

func TestRender_PerKindElaboration(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ErrorMessageHeader = "h"
	settings.ErrorMessages = map[string]string{
		"COMMIT_REGEX": "Messages must look like 'ABC-123: summary'.",
	}

	out := report.NewBuilder(settings).Render([]domain.ValidationError{
		domain.NewTypedError(domain.ErrorKindCommitRegex, "commit message doesn't match regex: x"),
		domain.NewValidationError("unrelated"),
	})

	assert.Equal(t,
		"h\n\n"+
			"commit message doesn't match regex: x\n"+
			"\n    Messages must look like 'ABC-123: summary'.\n\n"+
			"unrelated\n"+
			"\n",
		out)
}

func TestRender_Deterministic(t *testing.T) {
	settings := domain.DefaultSettings()
	errs := []domain.ValidationError{
		domain.NewValidationError("a"),
		domain.NewTypedError(domain.ErrorKindBranchName, "b"),
	}

	builder := report.NewBuilder(settings)
	assert.Equal(t, builder.Render(errs), builder.Render(errs))
}
