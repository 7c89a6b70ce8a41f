package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/jjanku/vw-passat/internal/sat"
)

type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file and loads its CNF formula in the
// given SAT solver.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	reader, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer reader.Close()

	b := &builder{solver}
	return dimacs.ReadBuilder(reader, b)
}

// builder wraps the solver to implement dimacs.Builder.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem")
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		clause[i] = sat.FromDIMACS(l)
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// Problem is a fully-loaded CNF formula, kept in memory so it can be
// copied and restricted by the cube-and-conquer driver (internal/cube)
// without re-reading the input file once per subproblem.
type Problem struct {
	NVars   int
	Clauses [][]sat.Literal
}

// LoadProblem parses a DIMACS CNF file into a Problem value.
func LoadProblem(filename string, gzipped bool) (Problem, error) {
	r, err := reader(filename, gzipped)
	if err != nil {
		return Problem{}, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &problemBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return Problem{}, err
	}
	return Problem{NVars: b.nVars, Clauses: b.clauses}, nil
}

type problemBuilder struct {
	nVars   int
	clauses [][]sat.Literal
}

func (b *problemBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem")
	}
	b.nVars = nVars
	b.clauses = make([][]sat.Literal, 0, nClauses)
	return nil
}

func (b *problemBuilder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		clause[i] = sat.FromDIMACS(l)
	}
	b.clauses = append(b.clauses, clause)
	return nil
}

func (b *problemBuilder) Comment(_ string) error {
	return nil
}

// LoadInto adds every clause of p to solver, declaring p.NVars variables
// first.
func LoadInto(p Problem, solver SATSolver) error {
	for i := 0; i < p.NVars; i++ {
		solver.AddVariable()
	}
	for _, c := range p.Clauses {
		if err := solver.AddClause(c); err != nil {
			return err
		}
	}
	return nil
}

// ReadModels returns the list of models (if any) contained in the given file.
func ReadModels(filename string) ([][]bool, error) {
	reader, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer reader.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(reader, b); err != nil {
		return nil, err
	}

	return b.models, nil
}

// modelBuilder collects each clause line as a model to implement
// dimacs.Builder.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil // ignore comments
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
