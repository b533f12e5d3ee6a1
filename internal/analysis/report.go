package analysis

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/terryli710/gotoh/internal/render"
)

// Report is a parsed alignment report.
type Report struct {
	Score      float64            `json:"score"`
	Alignments []render.Alignment `json:"alignments"`
}

// ParseReport reads a report written by render.WriteReport. The first
// non-blank line is the score; the remaining non-blank lines pair up into
// alignments, separated by blank lines. A trailing blank line is tolerated.
func ParseReport(r io.Reader) (*Report, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	rep := &Report{}
	haveScore := false
	var pending []string
	lineNo := 0

	flush := func() error {
		switch len(pending) {
		case 0:
		case 2:
			rep.Alignments = append(rep.Alignments, render.Alignment{A: pending[0], B: pending[1]})
		default:
			return fmt.Errorf("analysis: line %d: alignment block has %d lines, want 2", lineNo, len(pending))
		}
		pending = pending[:0]
		return nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !haveScore {
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return nil, fmt.Errorf("analysis: line %d: score: %w", lineNo, err)
			}
			rep.Score = v
			haveScore = true
			continue
		}
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		pending = append(pending, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("analysis: read report: %w", err)
	}
	if !haveScore {
		return nil, fmt.Errorf("analysis: report has no score line")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return rep, nil
}

// Diff lists the alignments present in only one of two reports.
type Diff struct {
	OnlyLeft  []render.Alignment `json:"only_left"`
	OnlyRight []render.Alignment `json:"only_right"`
}

// Equal reports whether both sides hold the same set of alignments.
func (d Diff) Equal() bool {
	return len(d.OnlyLeft) == 0 && len(d.OnlyRight) == 0
}

// Compare treats left and right as sets and returns their differences,
// each sorted by A then B.
func Compare(left, right []render.Alignment) Diff {
	return Diff{
		OnlyLeft:  difference(left, right),
		OnlyRight: difference(right, left),
	}
}

func difference(x, y []render.Alignment) []render.Alignment {
	in := make(map[render.Alignment]bool, len(y))
	for _, al := range y {
		in[al] = true
	}
	seen := make(map[render.Alignment]bool)
	var out []render.Alignment
	for _, al := range x {
		if in[al] || seen[al] {
			continue
		}
		seen[al] = true
		out = append(out, al)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
