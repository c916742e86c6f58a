package presentation

import (
	"io"

	"github.com/temirov/gitfu/internal/repostate"
)

const (
	repoHeaderConstant     = "Repo"
	branchHeaderConstant   = "Branch"
	dirtyHeaderConstant    = "Dirty"
	positionHeaderConstant = "Position"
	remoteHeaderConstant   = "Remote"

	// Shown in the Branch column when HEAD never resolved.
	brokenHeadTextConstant = "broken-head"
)

// StatusHeaders lists the dir-status columns in order.
var StatusHeaders = []string{repoHeaderConstant, branchHeaderConstant, dirtyHeaderConstant, positionHeaderConstant, remoteHeaderConstant}

// RenderStatusTable writes one row per repository in the given order.
func RenderStatusTable(writer io.Writer, palette *Palette, repositories []repostate.ProbedRepository, layout Layout) error {
	rows := make([][]Cell, 0, len(repositories))
	for _, repository := range repositories {
		rows = append(rows, statusRow(repository))
	}
	return renderTable(writer, palette, StatusHeaders, rows, layout)
}

func statusRow(repository repostate.ProbedRepository) []Cell {
	rowTone := identityTone(repository)
	repoCell := Cell{Text: repository.Identity.Name, Tone: rowTone}
	branchCell := Cell{Text: repository.Branch.DisplayName(), Tone: rowTone}

	if !repository.Healthy() {
		if len(branchCell.Text) == 0 {
			branchCell.Text = brokenHeadTextConstant
		}
		errorCell := Cell{Text: errorCellTextConstant, Tone: ToneAlert}
		return []Cell{repoCell, branchCell, errorCell, errorCell, errorCell}
	}

	var remoteText string
	if repository.Remote != nil {
		remoteText = FormatDivergence(&repository.Remote.Divergence)
	}
	positionTone := fetchTone(repository.FetchOutcome)

	return []Cell{
		repoCell,
		branchCell,
		{Text: FormatDirty(repository.Dirty), Tone: ToneAlert},
		{Text: FormatDivergence(repository.Branch.Divergence), Tone: positionTone},
		{Text: remoteText, Tone: positionTone},
	}
}

func identityTone(repository repostate.ProbedRepository) Tone {
	switch {
	case !repository.Healthy(), repository.Branch.Kind == repostate.BranchKindUnborn:
		return ToneEmphasis
	case repository.InSync():
		return ToneNeutral
	default:
		return ToneCaution
	}
}
