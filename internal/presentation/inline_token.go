package presentation

import (
	"strconv"
	"strings"

	"github.com/temirov/gitfu/internal/repostate"
)

const (
	aheadGlyphConstant      = "↑"
	behindGlyphConstant     = "↓"
	dirtyGlyphConstant      = "●"
	cleanGlyphConstant      = "✔"
	errorGlyphConstant      = "✘"
	addedPrefixConstant     = "+"
	tokenOpenConstant       = "("
	tokenCloseConstant      = ")"
	tokenSeparatorConstant  = "|"
	remoteOpenConstant      = "["
	remoteCloseConstant     = "]"
	remoteSeparatorConstant = "|"
	errorCellTextConstant   = errorGlyphConstant + " error"
)

// InlineOptions controls the optional parts of the inline token.
type InlineOptions struct {
	IncludeRemote bool
}

// RenderInlineToken renders `(<branch><divergence>[<remote>]|<dirty>)` for a shell prompt.
// Divergence shows ↑ahead then ↓behind, each only when non-zero, and nothing without an
// upstream. The remote segment appears only when requested and non-zero, toned by the
// fetch outcome.
func RenderInlineToken(palette *Palette, repository repostate.ProbedRepository, options InlineOptions) string {
	var builder strings.Builder
	builder.WriteString(tokenOpenConstant)
	builder.WriteString(renderBranchName(palette, repository.Branch))

	if repository.Branch.Divergence != nil {
		builder.WriteString(renderInlineDivergence(palette, *repository.Branch.Divergence))
	}

	if options.IncludeRemote && repository.Remote != nil && !repository.Remote.Divergence.IsZero() {
		builder.WriteString(renderRemoteSegment(palette, repository.Remote.Divergence, fetchTone(repository.FetchOutcome)))
	}

	builder.WriteString(tokenSeparatorConstant)
	builder.WriteString(renderInlineDirty(palette, repository.Dirty))
	builder.WriteString(tokenCloseConstant)
	return builder.String()
}

func renderBranchName(palette *Palette, branch repostate.BranchState) string {
	if branch.Kind == repostate.BranchKindDetached {
		return palette.Paint(ToneAccent, branch.DisplayName())
	}
	return palette.Paint(ToneEmphasis, branch.DisplayName())
}

func renderInlineDivergence(palette *Palette, divergence repostate.Divergence) string {
	var builder strings.Builder
	if divergence.Ahead > 0 {
		builder.WriteString(palette.Paint(ToneAffirmative, aheadGlyphConstant+strconv.Itoa(divergence.Ahead)))
	}
	if divergence.Behind > 0 {
		builder.WriteString(palette.Paint(ToneAlert, behindGlyphConstant+strconv.Itoa(divergence.Behind)))
	}
	return builder.String()
}

func renderRemoteSegment(palette *Palette, divergence repostate.Divergence, tone Tone) string {
	var segments []string
	if divergence.Ahead > 0 {
		segments = append(segments, aheadGlyphConstant+strconv.Itoa(divergence.Ahead))
	}
	if divergence.Behind > 0 {
		segments = append(segments, behindGlyphConstant+strconv.Itoa(divergence.Behind))
	}
	return palette.Paint(tone, remoteOpenConstant+strings.Join(segments, remoteSeparatorConstant)+remoteCloseConstant)
}

func renderInlineDirty(palette *Palette, dirty repostate.DirtyState) string {
	if dirty.Clean() {
		return palette.Paint(ToneAffirmative, cleanGlyphConstant)
	}
	changedText, addedText := dirtySegments(dirty)
	return palette.Paint(ToneAlert, changedText) + palette.Paint(ToneInformative, addedText)
}

// dirtySegments returns the `●N` and `+M` parts of the dirty marker; the count of
// each part is omitted when zero but the glyph is always present.
func dirtySegments(dirty repostate.DirtyState) (string, string) {
	changedText := dirtyGlyphConstant
	if dirty.Changed() > 0 {
		changedText += strconv.Itoa(dirty.Changed())
	}
	addedText := ""
	if dirty.Added > 0 {
		addedText = addedPrefixConstant + strconv.Itoa(dirty.Added)
	}
	return changedText, addedText
}

// FormatDivergence renders `↑a↓b` with both counts, or an empty string when there is nothing to show.
func FormatDivergence(divergence *repostate.Divergence) string {
	if divergence == nil || divergence.IsZero() {
		return ""
	}
	return aheadGlyphConstant + strconv.Itoa(divergence.Ahead) + behindGlyphConstant + strconv.Itoa(divergence.Behind)
}

// FormatDirty renders the dirty marker without color, or an empty string for a clean tree.
func FormatDirty(dirty repostate.DirtyState) string {
	if dirty.Clean() {
		return ""
	}
	changedText, addedText := dirtySegments(dirty)
	return changedText + addedText
}

func fetchTone(outcome repostate.FetchOutcome) Tone {
	if outcome == repostate.FetchSucceeded {
		return ToneAffirmative
	}
	return ToneCaution
}
