package presentation_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfu/internal/presentation"
	"github.com/temirov/gitfu/internal/repostate"
)

func sampleRepositories() []repostate.ProbedRepository {
	behind := namedRepository("alpha")
	behind.Branch.Upstream = "origin/main"
	behind.Branch.Divergence = &repostate.Divergence{Behind: 6}
	behind.Dirty = repostate.DirtyState{Modified: 4}
	behind.FetchOutcome = repostate.FetchSucceeded

	clean := namedRepository("beta-service")
	clean.Branch.Name = "feature/long-name"

	broken := namedRepository("gamma")
	broken.Branch = repostate.BranchState{}
	broken.ProbeError = errors.New("corrupt")

	return []repostate.ProbedRepository{behind, clean, broken}
}

func renderLines(testInstance *testing.T, render func(*bytes.Buffer) error) []string {
	testInstance.Helper()
	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, render(outputBuffer))
	return strings.Split(strings.TrimRight(outputBuffer.String(), "\n"), "\n")
}

func TestRenderStatusTableBordered(testInstance *testing.T) {
	lines := renderLines(testInstance, func(outputBuffer *bytes.Buffer) error {
		return presentation.RenderStatusTable(outputBuffer, plainPalette(), sampleRepositories(), presentation.LayoutBordered)
	})

	require.Len(testInstance, lines, 7)
	require.True(testInstance, strings.HasPrefix(lines[0], "╭"))
	require.True(testInstance, strings.HasPrefix(lines[len(lines)-1], "╰"))
	for _, header := range presentation.StatusHeaders {
		require.Contains(testInstance, lines[1], header)
	}
	require.True(testInstance, strings.HasPrefix(lines[2], "├"))

	expectedWidth := lipgloss.Width(lines[0])
	for _, line := range lines {
		require.Equal(testInstance, expectedWidth, lipgloss.Width(line), line)
	}

	require.Contains(testInstance, lines[3], "alpha")
	require.Contains(testInstance, lines[3], "●4")
	require.Contains(testInstance, lines[3], "↑0↓6")
	require.Contains(testInstance, lines[4], "feature/long-name")
	require.NotContains(testInstance, lines[4], "✔")
	require.Equal(testInstance, 3, strings.Count(lines[5], "✘ error"))
	require.Contains(testInstance, lines[5], "broken-head")
}

func TestRenderStatusTablePlainAlignsColumns(testInstance *testing.T) {
	lines := renderLines(testInstance, func(outputBuffer *bytes.Buffer) error {
		return presentation.RenderStatusTable(outputBuffer, plainPalette(), sampleRepositories(), presentation.LayoutPlain)
	})

	require.Len(testInstance, lines, 4)
	require.True(testInstance, strings.HasPrefix(lines[0], "Repo"))
	for _, line := range lines {
		require.NotContains(testInstance, line, "│")
	}

	headerRunes := []rune(lines[0])
	branchOffset := strings.Index(lines[0], "Branch")
	require.Positive(testInstance, branchOffset)
	branchColumn := len([]rune(lines[0][:branchOffset]))

	expectedBranches := []string{"main", "feature/long-name", "broken-head"}
	for rowIndex, expectedBranch := range expectedBranches {
		rowRunes := []rune(lines[rowIndex+1])
		require.Equal(testInstance, len(headerRunes), len(rowRunes), lines[rowIndex+1])
		require.Equal(testInstance, ' ', rowRunes[branchColumn-1])
		require.True(testInstance, strings.HasPrefix(string(rowRunes[branchColumn:]), expectedBranch))
	}
}

func TestRenderStatusTableWithoutRepositories(testInstance *testing.T) {
	lines := renderLines(testInstance, func(outputBuffer *bytes.Buffer) error {
		return presentation.RenderStatusTable(outputBuffer, plainPalette(), nil, presentation.LayoutPlain)
	})

	require.Len(testInstance, lines, 1)
	require.Equal(testInstance, "Repo  Branch  Dirty  Position  Remote", strings.TrimRight(lines[0], " "))
}

func TestRenderStatusTableColorsRows(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	colorPalette := presentation.NewPalette(outputBuffer, presentation.ColorModeAlways)
	require.NoError(testInstance, presentation.RenderStatusTable(outputBuffer, colorPalette, sampleRepositories(), presentation.LayoutPlain))

	rendered := outputBuffer.String()
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneCaution, "alpha"))
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneAffirmative, "↑0↓6"))
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneNeutral, "beta-service"))
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneEmphasis, "gamma"))
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneAlert, "✘ error"))
	require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneEmphasis, "broken-head"))
}

func TestRenderStatusTableCautionsUnconfirmedPositions(testInstance *testing.T) {
	testCases := []struct {
		name    string
		outcome repostate.FetchOutcome
	}{
		{name: "timed_out", outcome: repostate.FetchTimedOut},
		{name: "not_attempted", outcome: repostate.FetchNotAttempted},
		{name: "failed", outcome: repostate.FetchFailed},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repository := namedRepository("delta")
			repository.Branch.Upstream = "origin/main"
			repository.Branch.Divergence = &repostate.Divergence{Ahead: 2, Behind: 1}
			repository.Remote = &repostate.RemoteComparison{Divergence: repostate.Divergence{Behind: 3}}
			repository.FetchOutcome = testCase.outcome

			outputBuffer := &bytes.Buffer{}
			colorPalette := presentation.NewPalette(outputBuffer, presentation.ColorModeAlways)
			require.NoError(testInstance, presentation.RenderStatusTable(outputBuffer, colorPalette, []repostate.ProbedRepository{repository}, presentation.LayoutPlain))

			rendered := outputBuffer.String()
			require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneCaution, "↑2↓1"))
			require.Contains(testInstance, rendered, colorPalette.Paint(presentation.ToneCaution, "↑0↓3"))
			require.NotContains(testInstance, rendered, colorPalette.Paint(presentation.ToneAffirmative, "↑2↓1"))
		})
	}
}

func TestRenderStatusTableKeepsResolvedBranchOnErrorRows(testInstance *testing.T) {
	repository := namedRepository("epsilon")
	repository.Branch.Name = "release"
	repository.ProbeError = errors.New("status failed")

	lines := renderLines(testInstance, func(outputBuffer *bytes.Buffer) error {
		return presentation.RenderStatusTable(outputBuffer, plainPalette(), []repostate.ProbedRepository{repository}, presentation.LayoutPlain)
	})

	require.Len(testInstance, lines, 2)
	require.Contains(testInstance, lines[1], "release")
	require.NotContains(testInstance, lines[1], "broken-head")
}

func TestRenderBranchesTable(testInstance *testing.T) {
	now := time.Date(2024, time.May, 5, 12, 30, 5, 0, time.UTC)
	branches := []repostate.BranchSummary{
		{Name: "main", LastCommit: time.Date(2024, time.May, 4, 10, 30, 0, 0, time.UTC)},
		{Name: "release/1.0", LastCommit: time.Date(2024, time.May, 5, 12, 29, 0, 0, time.FixedZone("east", 3*3600))},
	}

	for _, layout := range []presentation.Layout{presentation.LayoutBordered, presentation.LayoutPlain} {
		lines := renderLines(testInstance, func(outputBuffer *bytes.Buffer) error {
			return presentation.RenderBranchesTable(outputBuffer, plainPalette(), branches, now, layout)
		})

		rendered := strings.Join(lines, "\n")
		for _, header := range presentation.BranchHeaders {
			require.Contains(testInstance, rendered, header)
		}
		require.Contains(testInstance, rendered, "2024-05-04 10:30:00")
		require.Contains(testInstance, rendered, "1days 2h 0m 5s")
		require.Contains(testInstance, rendered, "2024-05-05 09:29:00")
		require.Contains(testInstance, rendered, "3h 1m 5s")
		require.Less(testInstance, strings.Index(rendered, "main"), strings.Index(rendered, "release/1.0"))
	}
}

func TestLayoutFor(testInstance *testing.T) {
	require.Equal(testInstance, presentation.LayoutPlain, presentation.LayoutFor(true))
	require.Equal(testInstance, presentation.LayoutBordered, presentation.LayoutFor(false))
}
