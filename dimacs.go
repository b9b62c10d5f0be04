package arjun

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsedCNF is the result of reading a DIMACS file: the clause set, in
// signed-integer convention, and an optional declared sampling set from a
// `c ind v1 v2 ... 0` header. Sampling is nil when no such header was
// present.
type ParsedCNF struct {
	NumVars  int
	Clauses  [][]int
	Sampling []int // 1-based; nil if absent
}

// ParseDIMACS parses text in the DIMACS CNF format. Comments may appear
// anywhere (not just in the preamble) and the problem line is optional.
// This parser also recognizes one non-standard comment form:
//
//	c ind v1 v2 ... vk 0
//
// which declares the initial sampling set S. Only the first such header is
// honored; later ones are ignored, matching how real DIMACS writers
// sometimes duplicate the line.
func ParseDIMACS(r io.Reader) (ParsedCNF, error) {
	var problem struct {
		vars    int
		clauses int
	}
	var clauses [][]int
	var clause []int
	var sampling []int
	haveSampling := false

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == 'c' {
			if !haveSampling {
				if ind, ok := parseIndHeader(line); ok {
					sampling = ind
					haveSampling = true
				}
			}
			continue
		}
		// Some CNF formats attach extra data in a trailer after a line
		// containing a single %.
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if len(clauses) > 0 {
				return ParsedCNF{}, errors.New("problem line appears after clauses")
			}
			if problem.vars > 0 {
				return ParsedCNF{}, errors.New("multiple problem lines")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return ParsedCNF{}, errors.Errorf("malformed problem line %q", line)
			}
			if fields[1] != "cnf" {
				return ParsedCNF{}, errors.Errorf("only cnf supported; got %q", fields[1])
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return ParsedCNF{}, errors.Wrap(err, "malformed #vars in problem line")
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return ParsedCNF{}, errors.Wrap(err, "malformed #clauses in problem line")
			}
			if problem.vars < 0 || problem.clauses < 0 {
				return ParsedCNF{}, errors.Errorf("invalid counts in problem line %q", line)
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return ParsedCNF{}, errors.Wrapf(err, "invalid literal %q", field)
			}
			if n == 0 {
				clauses = append(clauses, clause)
				clause = nil
			} else {
				clause = append(clause, n)
			}
		}
	}
	if err := s.Err(); err != nil {
		return ParsedCNF{}, err
	}
	if len(clause) > 0 {
		clauses = append(clauses, clause)
	}

	maxVar := problem.vars
	for _, cls := range clauses {
		for _, v := range cls {
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	if problem.vars > 0 && len(clauses) != problem.clauses {
		return ParsedCNF{}, errors.Errorf(
			"problem line specifies %d clauses, but there are %d", problem.clauses, len(clauses))
	}
	return ParsedCNF{NumVars: maxVar, Clauses: clauses, Sampling: sampling}, nil
}

func parseIndHeader(line string) ([]int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "c" || fields[1] != "ind" {
		return nil, false
	}
	var out []int
	for _, f := range fields[2:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		if n == 0 {
			break
		}
		out = append(out, n)
	}
	return out, true
}

// WriteDIMACS writes problem back out in DIMACS CNF form (no comments, no
// sampling header); the DIMACS round-trip test in dimacs_test.go checks it
// against the parser.
func WriteDIMACS(w io.Writer, problem [][]int) error {
	maxVar := 0
	for _, cls := range problem {
		for _, v := range cls {
			if v < 0 {
				v = -v
			}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", maxVar, len(problem)); err != nil {
		return err
	}
	for _, cls := range problem {
		var b strings.Builder
		for _, v := range cls {
			fmt.Fprintf(&b, "%d ", v)
		}
		b.WriteString("0\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteSamplingSet writes the `c ind ...` result line: the 1-based
// variables of I, in the order given.
func WriteSamplingSet(w io.Writer, indep []int) error {
	var b strings.Builder
	b.WriteString("c ind")
	for _, v := range indep {
		fmt.Fprintf(&b, " %d", v)
	}
	b.WriteString(" 0\n")
	_, err := io.WriteString(w, b.String())
	return err
}
