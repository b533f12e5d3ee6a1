package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terryli710/gotoh/internal/subst"
)

// headerLines is the number of fixed lines before the substitution entries.
const headerLines = 8

// Parse reads the legacy 8-line text format:
//
//	line 1  sequence A
//	line 2  sequence B
//	line 3  0 for global, nonzero for local
//	line 4  dx ex dy ey (OpenA ExtendA OpenB ExtendB)
//	line 5  size of alphabet A
//	line 6  alphabet A
//	line 7  size of alphabet B
//	line 8  alphabet B
//	rest    <ignored> <ignored> a b score, blank lines skipped
//
// Only the first whitespace-separated token of lines 1, 2, 6 and 8 is used.
// A blank sequence line is an empty sequence.
func Parse(r io.Reader) (*Config, error) {
	var lines [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.Fields(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Field: "input", Message: "read failed", Err: err}
	}
	if len(lines) < headerLines {
		return nil, formatErrorf(len(lines)+1, "header", "expected %d header lines, got %d", headerLines, len(lines))
	}

	cfg := &Config{Table: subst.New()}

	cfg.SeqA = normalize(firstToken(lines[0]))
	cfg.SeqB = normalize(firstToken(lines[1]))

	flag, err := parseInt(lines[2], 3, "mode")
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		cfg.Mode = Global
	} else {
		cfg.Mode = Local
	}

	if len(lines[3]) < 4 {
		return nil, formatErrorf(4, "gaps", "expected 4 penalties (dx ex dy ey), got %d", len(lines[3]))
	}
	var gaps [4]float64
	for i := range gaps {
		gaps[i], err = strconv.ParseFloat(lines[3][i], 64)
		if err != nil {
			return nil, &FormatError{Line: 4, Field: "gaps", Message: fmt.Sprintf("penalty %d", i+1), Err: err}
		}
	}
	cfg.Gaps = Penalties{OpenA: gaps[0], ExtendA: gaps[1], OpenB: gaps[2], ExtendB: gaps[3]}

	if cfg.DeclaredA, err = parseInt(lines[4], 5, "alphabet_a size"); err != nil {
		return nil, err
	}
	if cfg.AlphabetA, err = parseAlphabet(lines[5], 6, "alphabet_a"); err != nil {
		return nil, err
	}
	if cfg.DeclaredB, err = parseInt(lines[6], 7, "alphabet_b size"); err != nil {
		return nil, err
	}
	if cfg.AlphabetB, err = parseAlphabet(lines[7], 8, "alphabet_b"); err != nil {
		return nil, err
	}

	for i, fields := range lines[headerLines:] {
		if len(fields) == 0 {
			continue
		}
		lineNo := headerLines + i + 1
		if len(fields) < 5 {
			return nil, formatErrorf(lineNo, "scores", "expected 5 fields, got %d", len(fields))
		}
		a, ok := singleSymbol(fields[2])
		if !ok {
			return nil, formatErrorf(lineNo, "scores", "symbol A %q is not a single character", fields[2])
		}
		b, ok := singleSymbol(fields[3])
		if !ok {
			return nil, formatErrorf(lineNo, "scores", "symbol B %q is not a single character", fields[3])
		}
		score, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Field: "scores", Message: "score", Err: err}
		}
		cfg.Table.Set(a, b, score)
	}

	return cfg, nil
}

// Encode writes cfg in the legacy text format. Substitution entries are
// written ordered by symbol, with 1-based alphabet positions in the two
// ignored columns (0 when a symbol is outside its alphabet).
// Parse(Encode(cfg)) reproduces cfg.
func Encode(w io.Writer, cfg *Config) error {
	bw := bufio.NewWriter(w)

	flag := 0
	if cfg.Mode == Local {
		flag = 1
	}
	declaredA, declaredB := cfg.DeclaredA, cfg.DeclaredB
	if declaredA < 0 {
		declaredA = cfg.AlphabetA.Len()
	}
	if declaredB < 0 {
		declaredB = cfg.AlphabetB.Len()
	}

	fmt.Fprintln(bw, cfg.SeqA)
	fmt.Fprintln(bw, cfg.SeqB)
	fmt.Fprintln(bw, flag)
	fmt.Fprintf(bw, "%s %s %s %s\n",
		formatFloat(cfg.Gaps.OpenA), formatFloat(cfg.Gaps.ExtendA),
		formatFloat(cfg.Gaps.OpenB), formatFloat(cfg.Gaps.ExtendB))
	fmt.Fprintln(bw, declaredA)
	fmt.Fprintln(bw, cfg.AlphabetA.String())
	fmt.Fprintln(bw, declaredB)
	fmt.Fprintln(bw, cfg.AlphabetB.String())

	if cfg.Table != nil {
		posA := positions(cfg.AlphabetA)
		posB := positions(cfg.AlphabetB)
		for _, e := range cfg.Table.Pairs() {
			fmt.Fprintf(bw, "%d %d %c %c %s\n", posA[e.A], posB[e.B], e.A, e.B, formatFloat(e.Score))
		}
	}

	return bw.Flush()
}

func firstToken(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseInt(fields []string, line int, field string) (int, error) {
	if len(fields) == 0 {
		return 0, formatErrorf(line, field, "missing value")
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, &FormatError{Line: line, Field: field, Message: "not an integer", Err: err}
	}
	return v, nil
}

func parseAlphabet(fields []string, line int, field string) (subst.Alphabet, error) {
	a, err := subst.NewAlphabet(normalize(firstToken(fields)))
	if err != nil {
		return subst.Alphabet{}, &FormatError{Line: line, Field: field, Message: "invalid alphabet", Err: err}
	}
	return a, nil
}

func positions(a subst.Alphabet) map[rune]int {
	pos := make(map[rune]int, a.Len())
	for i, r := range a.Symbols() {
		pos[r] = i + 1
	}
	return pos
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
