package presentation

import (
	"io"
	"time"

	"github.com/temirov/gitfu/internal/repostate"
	"github.com/temirov/gitfu/internal/timefmt"
)

const (
	lastCommitHeaderConstant      = "Last commit"
	ageHeaderConstant             = "Age"
	branchNameHeaderConstant      = "Branch name"
	commitTimestampLayoutConstant = "2006-01-02 15:04:05"
)

// BranchHeaders lists the branches columns in order.
var BranchHeaders = []string{lastCommitHeaderConstant, ageHeaderConstant, branchNameHeaderConstant}

// FormatCommitTimestamp renders t in UTC as `YYYY-MM-DD HH:MM:SS`.
func FormatCommitTimestamp(timestamp time.Time) string {
	return timestamp.UTC().Format(commitTimestampLayoutConstant)
}

// RenderBranchesTable writes one row per branch in the given order, with ages measured from now.
func RenderBranchesTable(writer io.Writer, palette *Palette, branches []repostate.BranchSummary, now time.Time, layout Layout) error {
	rows := make([][]Cell, 0, len(branches))
	for _, branch := range branches {
		age := repostate.LastCommit{Timestamp: branch.LastCommit, Present: true}.Age(now)
		rows = append(rows, []Cell{
			{Text: FormatCommitTimestamp(branch.LastCommit), Tone: ToneAffirmative},
			{Text: timefmt.FormatDuration(age), Tone: ToneInformative},
			{Text: branch.Name, Tone: ToneNeutral},
		})
	}
	return renderTable(writer, palette, BranchHeaders, rows, layout)
}
