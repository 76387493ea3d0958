// core/energy/paramfile.go
// Text parameter files, organized in "#"-headed sections in the style of
// ViennaRNA parameter sets. A file overlays the built-in defaults: only the
// sections present are replaced. Matrix sections are laid out in PairType
// order (AU UA CG GC GU UG NN) and base order (A C G U N); "INF" marks
// forbidden entries; /* ... */ comments are ignored. Unknown sections are
// skipped so files with extra tables still load.
package energy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type paramSection struct {
	name   string
	line   int
	tokens []string
}

// LoadTablesFile reads a parameter file from disk.
func LoadTablesFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadTables(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadTables parses a parameter file, starting from DefaultTables.
func LoadTables(r io.Reader) (*Tables, error) {
	sections, err := splitSections(r)
	if err != nil {
		return nil, err
	}
	t := DefaultTables()
	for _, s := range sections {
		if err := applySection(t, s); err != nil {
			return nil, fmt.Errorf("section %q (line %d): %w", s.name, s.line, err)
		}
	}
	return t, nil
}

func splitSections(r io.Reader) ([]paramSection, error) {
	var (
		sections  []paramSection
		current   *paramSection
		inComment bool
		lineNo    int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := stripComments(sc.Text(), &inComment)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "##") {
			continue // format header
		}
		if strings.HasPrefix(line, "#") {
			name := strings.TrimSpace(line[1:])
			sections = append(sections, paramSection{name: name, line: lineNo})
			current = &sections[len(sections)-1]
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: data before first section header", lineNo)
		}
		current.tokens = append(current.tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sections, nil
}

func stripComments(line string, inComment *bool) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		if *inComment {
			if end := strings.Index(line[i:], "*/"); end >= 0 {
				*inComment = false
				i += end + 2
				continue
			}
			return b.String()
		}
		if start := strings.Index(line[i:], "/*"); start >= 0 {
			b.WriteString(line[i : i+start])
			*inComment = true
			i += start + 2
			continue
		}
		b.WriteString(line[i:])
		break
	}
	return b.String()
}

func applySection(t *Tables, s paramSection) error {
	switch s.name {
	case "stack":
		return fillPairPair(&t.Stack, s.tokens)
	case "stack_enthalpies":
		return fillPairPair(&t.StackEnth, s.tokens)
	case "hairpin":
		return fillLoopSizes(&t.Hairpin, s.tokens)
	case "hairpin_enthalpies":
		return fillLoopSizes(&t.HairpinEnth, s.tokens)
	case "bulge":
		return fillLoopSizes(&t.Bulge, s.tokens)
	case "bulge_enthalpies":
		return fillLoopSizes(&t.BulgeEnth, s.tokens)
	case "interior":
		return fillLoopSizes(&t.Interior, s.tokens)
	case "interior_enthalpies":
		return fillLoopSizes(&t.InteriorEnth, s.tokens)
	case "mismatch_hairpin":
		return fillMismatch(&t.MismatchHairpin, s.tokens)
	case "mismatch_hairpin_enthalpies":
		return fillMismatch(&t.MismatchHairpinEnth, s.tokens)
	case "mismatch_interior":
		return fillMismatch(&t.MismatchInterior, s.tokens)
	case "mismatch_interior_enthalpies":
		return fillMismatch(&t.MismatchInteriorEnth, s.tokens)
	case "mismatch_multi":
		return fillMismatch(&t.MismatchMulti, s.tokens)
	case "mismatch_multi_enthalpies":
		return fillMismatch(&t.MismatchMultiEnth, s.tokens)
	case "mismatch_exterior":
		return fillMismatch(&t.MismatchExterior, s.tokens)
	case "mismatch_exterior_enthalpies":
		return fillMismatch(&t.MismatchExteriorEnth, s.tokens)
	case "dangle5":
		return fillDangle(&t.Dangle5, s.tokens)
	case "dangle5_enthalpies":
		return fillDangle(&t.Dangle5Enth, s.tokens)
	case "dangle3":
		return fillDangle(&t.Dangle3, s.tokens)
	case "dangle3_enthalpies":
		return fillDangle(&t.Dangle3Enth, s.tokens)
	case "ML_params":
		vals, err := parseInts(s.tokens, 6)
		if err != nil {
			return err
		}
		t.MLBase, t.MLBaseEnth = vals[0], vals[1]
		t.MLClosing, t.MLClosingEnth = vals[2], vals[3]
		t.MLIntern, t.MLInternEnth = vals[4], vals[5]
		return nil
	case "NINIO":
		vals, err := parseInts(s.tokens, 3)
		if err != nil {
			return err
		}
		t.Ninio, t.NinioEnth, t.MaxNinio = vals[0], vals[1], vals[2]
		return nil
	case "Misc":
		if len(s.tokens) != 3 {
			return fmt.Errorf("want 3 values (terminal-AU, enthalpy, lxc), got %d", len(s.tokens))
		}
		vals, err := parseInts(s.tokens[:2], 2)
		if err != nil {
			return err
		}
		lxc, err := strconv.ParseFloat(s.tokens[2], 64)
		if err != nil {
			return fmt.Errorf("lxc: %w", err)
		}
		t.TerminalAU, t.TerminalAUEnth, t.LXC = vals[0], vals[1], lxc
		return nil
	case "Triloops", "Tetraloops", "Hexaloops":
		return fillSpecialHairpins(t, s.tokens)
	case "END":
		return nil
	default:
		return nil // unknown section, skip
	}
}

func parseInt(tok string) (int, error) {
	if tok == "INF" {
		return Inf, nil
	}
	return strconv.Atoi(tok)
}

func parseInts(tokens []string, want int) ([]int, error) {
	if len(tokens) != want {
		return nil, fmt.Errorf("want %d values, got %d", want, len(tokens))
	}
	out := make([]int, want)
	for i, tok := range tokens {
		v, err := parseInt(tok)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func fillPairPair(dst *[PairCount][PairCount]int, tokens []string) error {
	vals, err := parseInts(tokens, PairCount*PairCount)
	if err != nil {
		return err
	}
	for a := 0; a < PairCount; a++ {
		for b := 0; b < PairCount; b++ {
			dst[a][b] = vals[a*PairCount+b]
		}
	}
	return nil
}

func fillLoopSizes(dst *[MaxLoopTable + 1]int, tokens []string) error {
	vals, err := parseInts(tokens, MaxLoopTable+1)
	if err != nil {
		return err
	}
	copy(dst[:], vals)
	return nil
}

func fillMismatch(dst *[PairCount][BaseCount][BaseCount]int, tokens []string) error {
	vals, err := parseInts(tokens, PairCount*BaseCount*BaseCount)
	if err != nil {
		return err
	}
	k := 0
	for p := 0; p < PairCount; p++ {
		for a := 0; a < BaseCount; a++ {
			for b := 0; b < BaseCount; b++ {
				dst[p][a][b] = vals[k]
				k++
			}
		}
	}
	return nil
}

func fillDangle(dst *[PairCount][BaseCount]int, tokens []string) error {
	vals, err := parseInts(tokens, PairCount*BaseCount)
	if err != nil {
		return err
	}
	k := 0
	for p := 0; p < PairCount; p++ {
		for a := 0; a < BaseCount; a++ {
			dst[p][a] = vals[k]
			k++
		}
	}
	return nil
}

// fillSpecialHairpins reads (sequence, ΔG, ΔH) triples. The sequence covers
// the full loop including the closing pair.
func fillSpecialHairpins(t *Tables, tokens []string) error {
	if len(tokens)%3 != 0 {
		return fmt.Errorf("want (sequence, energy, enthalpy) triples, got %d tokens", len(tokens))
	}
	for k := 0; k < len(tokens); k += 3 {
		seq := strings.ToUpper(tokens[k])
		if _, err := ParseSequence(seq); err != nil {
			return fmt.Errorf("loop %q: %w", tokens[k], err)
		}
		dg, err := parseInt(tokens[k+1])
		if err != nil {
			return fmt.Errorf("loop %q energy: %w", tokens[k], err)
		}
		dh, err := parseInt(tokens[k+2])
		if err != nil {
			return fmt.Errorf("loop %q enthalpy: %w", tokens[k], err)
		}
		t.SpecialHairpins[seq] = dg
		t.SpecialHairpinsEnth[seq] = dh
	}
	return nil
}
