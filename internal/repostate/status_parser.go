package repostate

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	porcelainHeaderPrefixConstant          = "# "
	porcelainUpstreamHeaderConstant        = "branch.upstream"
	porcelainAheadBehindHeaderConstant     = "branch.ab"
	porcelainOrdinaryEntryConstant         = "1"
	porcelainRenamedEntryConstant          = "2"
	porcelainUnmergedEntryConstant         = "u"
	porcelainUntrackedEntryConstant        = "?"
	porcelainAheadPrefixConstant           = "+"
	porcelainBehindPrefixConstant          = "-"
	porcelainAddedCodeConstant             = 'A'
	porcelainDeletedCodeConstant           = 'D'
	porcelainModifiedCodeConstant          = 'M'
	porcelainTypeChangedCodeConstant       = 'T'
	porcelainRenamedCodeConstant           = 'R'
	porcelainCopiedCodeConstant            = 'C'
	porcelainUnmergedCodeConstant          = 'U'
	porcelainStatusCodeLengthConstant      = 2
	malformedAheadBehindTemplateConstant   = "%w: %q"
	malformedStatusEntryTemplateConstant   = "%w: %q"
	revisionCountFieldCountConstant        = 2
	malformedRevisionCountTemplateConstant = "%w: %q"
)

var (
	errMalformedStatusOutput   = errors.New("malformed git status output")
	errMalformedRevisionCounts = errors.New("malformed git rev-list output")
)

type porcelainStatus struct {
	upstream   string
	divergence *Divergence
	dirty      DirtyState
}

type changeBuckets struct {
	added    bool
	modified bool
	deleted  bool
}

func (buckets *changeBuckets) record(statusCode rune) {
	switch statusCode {
	case porcelainAddedCodeConstant:
		buckets.added = true
	case porcelainDeletedCodeConstant:
		buckets.deleted = true
	case porcelainModifiedCodeConstant, porcelainTypeChangedCodeConstant, porcelainRenamedCodeConstant, porcelainCopiedCodeConstant, porcelainUnmergedCodeConstant:
		buckets.modified = true
	}
}

func (buckets changeBuckets) applyTo(dirty *DirtyState) {
	if buckets.added {
		dirty.Added++
	}
	if buckets.modified {
		dirty.Modified++
	}
	if buckets.deleted {
		dirty.Deleted++
	}
}

// parsePorcelainStatus reads `git status --porcelain=v2 --branch` output.
// Each path counts at most once per bucket; ignored entries are skipped.
func parsePorcelainStatus(output string) (porcelainStatus, error) {
	var status porcelainStatus

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		if strings.HasPrefix(line, porcelainHeaderPrefixConstant) {
			headerError := status.applyHeader(strings.TrimPrefix(line, porcelainHeaderPrefixConstant))
			if headerError != nil {
				return porcelainStatus{}, headerError
			}
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case porcelainOrdinaryEntryConstant, porcelainRenamedEntryConstant, porcelainUnmergedEntryConstant:
			if len(fields) < 2 || len(fields[1]) != porcelainStatusCodeLengthConstant {
				return porcelainStatus{}, fmt.Errorf(malformedStatusEntryTemplateConstant, errMalformedStatusOutput, line)
			}
			var buckets changeBuckets
			for _, statusCode := range fields[1] {
				buckets.record(statusCode)
			}
			buckets.applyTo(&status.dirty)
		case porcelainUntrackedEntryConstant:
			status.dirty.Added++
		}
	}
	if scanError := scanner.Err(); scanError != nil {
		return porcelainStatus{}, scanError
	}

	return status, nil
}

func (status *porcelainStatus) applyHeader(header string) error {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case porcelainUpstreamHeaderConstant:
		if len(fields) > 1 {
			status.upstream = fields[1]
		}
	case porcelainAheadBehindHeaderConstant:
		if len(fields) != 3 || !strings.HasPrefix(fields[1], porcelainAheadPrefixConstant) || !strings.HasPrefix(fields[2], porcelainBehindPrefixConstant) {
			return fmt.Errorf(malformedAheadBehindTemplateConstant, errMalformedStatusOutput, header)
		}
		ahead, aheadError := strconv.Atoi(strings.TrimPrefix(fields[1], porcelainAheadPrefixConstant))
		behind, behindError := strconv.Atoi(strings.TrimPrefix(fields[2], porcelainBehindPrefixConstant))
		if aheadError != nil || behindError != nil {
			return fmt.Errorf(malformedAheadBehindTemplateConstant, errMalformedStatusOutput, header)
		}
		status.divergence = &Divergence{Ahead: ahead, Behind: behind}
	}
	return nil
}

// parseRevisionCounts reads `git rev-list --left-right --count A...B` output as ahead and behind.
func parseRevisionCounts(output string) (Divergence, error) {
	fields := strings.Fields(output)
	if len(fields) != revisionCountFieldCountConstant {
		return Divergence{}, fmt.Errorf(malformedRevisionCountTemplateConstant, errMalformedRevisionCounts, output)
	}
	ahead, aheadError := strconv.Atoi(fields[0])
	behind, behindError := strconv.Atoi(fields[1])
	if aheadError != nil || behindError != nil {
		return Divergence{}, fmt.Errorf(malformedRevisionCountTemplateConstant, errMalformedRevisionCounts, output)
	}
	return Divergence{Ahead: ahead, Behind: behind}, nil
}
