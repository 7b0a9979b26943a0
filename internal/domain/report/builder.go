// Package report renders an ordered list of validation errors into the text
// shown to the pusher when a push is rejected.
package report

import (
	"strings"

	"github.com/yellingatcode/yet-another-commit-checker/internal/domain"
)

// DefaultHeader is the banner used when no custom header is configured.
const DefaultHeader = "\n" +
	"  (c).-.(c)    (c).-.(c)    (c).-.(c)    (c).-.(c)    (c).-.(c) \n" +
	"   / ._. \\      / ._. \\      / ._. \\      / ._. \\      / ._. \\ \n" +
	" __\\( Y )/__  __\\( Y )/__  __\\( Y )/__  __\\( Y )/__  __\\( Y )/__\n" +
	"(_.-/'-'\\-._)(_.-/'-'\\-._)(_.-/'-'\\-._)(_.-/'-'\\-._)(_.-/'-'\\-._)\n" +
	"   || E ||      || R ||      || R ||      || O ||      || R ||\n" +
	" _.' `-' '._  _.' `-' '._  _.' `-' '._  _.' `-' '._  _.' `-' '.\n" +
	"(.-./`-'\\.-.)(.-./`-`\\.-.)(.-./`-`\\.-.)(.-./`-'\\.-.)(.-./`-`\\.-.)\n" +
	" `-'     `-'  `-'     `-'  `-'     `-'  `-'     `-'  `-'     `-' \n" +
	"\n" +
	"\n" +
	"Push rejected.\n"

// Builder renders rejection reports for one settings value. Rendering is a
// pure function of (errors, settings); identical input yields identical
// output.
type Builder struct {
	settings domain.Settings
}

// NewBuilder creates a Builder for the given settings.
func NewBuilder(settings domain.Settings) *Builder {
	return &Builder{settings: settings}
}

// Render produces the full rejection message: header, one line per error
// with any configured per-kind elaboration indented under it, and footer.
func (b *Builder) Render(errors []domain.ValidationError) string {
	var sb strings.Builder

	sb.WriteString(b.header())
	sb.WriteString(b.errors(errors))
	sb.WriteString(b.footer())

	return sb.String()
}

func (b *Builder) errors(errors []domain.ValidationError) string {
	var sb strings.Builder

	for _, e := range errors {
		sb.WriteString(e.Message)
		sb.WriteString("\n")

		if custom := b.settings.CustomMessage(e.Kind); custom != "" {
			sb.WriteString("\n    ")
			sb.WriteString(custom)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("\n")

	return sb.String()
}

func (b *Builder) header() string {
	header := b.settings.ErrorMessageHeader
	if header == "" {
		header = DefaultHeader
	}

	return header + "\n\n"
}

func (b *Builder) footer() string {
	if footer := b.settings.ErrorMessageFooter; footer != "" {
		return footer + "\n\n"
	}

	return ""
}
