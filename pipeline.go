package main

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/mlml/logic/formula"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/logic/model"
	sl "github.com/cs-au-dk/mlml/utils/slices"
	"go.uber.org/zap"
)

// pipeline builds the logic structures of a project stage by stage:
// the lattices, the filters over them, the many-lattice, and finally
// the model. Each stage reports the first violation it hits.
type pipeline struct {
	project *Project

	lattices map[string]*lattice.Lattice
	filters  map[string]*lattice.Filter
	ml       *lattice.ManyLattice
	mdl      *model.Model
}

func newPipeline(proj *Project) *pipeline {
	return &pipeline{project: proj}
}

func (p *pipeline) run() error {
	for _, stage := range []func() error{
		p.buildLattices,
		p.buildFilters,
		p.buildManyLattice,
		p.buildModel,
	} {
		if err := stage(); err != nil {
			return err
		}
	}
	return nil
}

func (p *pipeline) buildLattices() error {
	p.lattices = make(map[string]*lattice.Lattice, len(p.project.Lattices))
	for _, lc := range p.project.Lattices {
		if _, found := p.lattices[lc.Name]; found {
			return fmt.Errorf("duplicate lattice %q", lc.Name)
		}

		decl := lattice.Decl{
			Name:          lc.Name,
			Elements:      lc.Elements,
			Order:         lc.Order,
			Negation:      lc.Negation,
			DeriveHeyting: lc.Heyting,
		}
		if len(lc.Residuum) > 0 {
			decl.Residuum = make(map[[2]string]string, len(lc.Residuum))
			for _, entry := range lc.Residuum {
				decl.Residuum[[2]string{entry[0], entry[1]}] = entry[2]
			}
		}

		l, err := lattice.New(decl)
		if err != nil {
			return err
		}
		p.lattices[lc.Name] = l
		logger.Debug("built lattice",
			zap.String("lattice", l.Name()),
			zap.Int("elements", l.Size()),
			zap.Int("height", l.Top().Height()))
	}
	return nil
}

func (p *pipeline) buildFilters() error {
	p.filters = make(map[string]*lattice.Filter, len(p.project.Filters))
	for _, fc := range p.project.Filters {
		if _, found := p.filters[fc.Name]; found {
			return fmt.Errorf("duplicate filter %q", fc.Name)
		}
		l, found := p.lattices[fc.Lattice]
		if !found {
			return fmt.Errorf("filter %q: unknown lattice %q", fc.Name, fc.Lattice)
		}

		f, err := lattice.NewFilter(l, fc.Elements...)
		if err != nil {
			return fmt.Errorf("filter %q: %w", fc.Name, err)
		}
		p.filters[fc.Name] = f
		logger.Debug("built filter",
			zap.String("filter", fc.Name),
			zap.String("lattice", fc.Lattice),
			zap.Int("designated", f.Size()))
	}
	return nil
}

func (p *pipeline) buildManyLattice() error {
	comps := make([]lattice.Component, len(p.project.ManyLattice.Components))
	for idx, cc := range p.project.ManyLattice.Components {
		comp, err := p.component(cc)
		if err != nil {
			return fmt.Errorf("component %d: %w", idx, err)
		}
		comps[idx] = comp
	}

	ml, err := lattice.NewMany(comps...)
	if err != nil {
		return err
	}
	if bc := p.project.ManyLattice.Base; bc != nil {
		base, err := p.component(*bc)
		if err != nil {
			return fmt.Errorf("base: %w", err)
		}
		if ml, err = ml.WithBase(base); err != nil {
			return err
		}
	}

	p.ml = ml
	logger.Debug("built many-lattice",
		zap.Int("components", ml.Len()),
		zap.Bool("base", p.project.ManyLattice.Base != nil))
	return nil
}

// component resolves the named lattice and filter of one component.
func (p *pipeline) component(cc componentConfig) (lattice.Component, error) {
	l, found := p.lattices[cc.Lattice]
	if !found {
		return lattice.Component{}, fmt.Errorf("unknown lattice %q", cc.Lattice)
	}
	f, found := p.filters[cc.Filter]
	if !found {
		return lattice.Component{}, fmt.Errorf("unknown filter %q", cc.Filter)
	}
	return lattice.Component{Lattice: l, Filter: f}, nil
}

func (p *pipeline) buildModel() error {
	mc := p.project.Model

	decl := model.Decl{
		Name:    mc.Name,
		Props:   mc.Props,
		Edges:   mc.Edges,
		Initial: mc.Initial,
	}
	for _, wc := range mc.Worlds {
		decl.Worlds = append(decl.Worlds, model.WorldDecl{
			ID:        wc.ID,
			Component: wc.Component,
			Assign:    wc.Assign,
		})
	}

	mdl, err := model.New(p.ml, decl)
	if err != nil {
		return err
	}
	p.mdl = mdl
	logger.Debug("built model",
		zap.String("model", mdl.Name()),
		zap.Int("worlds", len(mdl.Worlds())),
		zap.String("initial", mdl.Initial().ID()))
	return nil
}

// namedFormula pairs a parsed formula with the project name it was
// resolved from, if any.
type namedFormula struct {
	name string
	f    formula.Formula
}

func (nf namedFormula) display() string {
	if nf.name != "" {
		return nf.name
	}
	return nf.f.String()
}

// projectFormulas parses every formula named in the project file.
func (p *pipeline) projectFormulas() ([]namedFormula, error) {
	nfs := make([]namedFormula, 0, len(p.project.Formulas))
	for _, fc := range p.project.Formulas {
		f, err := formula.Parse(fc.Text)
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", fc.Name, err)
		}
		nfs = append(nfs, namedFormula{name: fc.Name, f: f})
	}
	return nfs, nil
}

// resolveFormulas turns command arguments into formulas. An argument
// matching a project formula name takes that formula; anything else
// is parsed as formula text. Without arguments every project formula
// is taken.
func (p *pipeline) resolveFormulas(args []string) ([]namedFormula, error) {
	if len(args) == 0 {
		nfs, err := p.projectFormulas()
		if err == nil && len(nfs) == 0 {
			return nil, errors.New("no formulas: pass one as an argument or add a formulas section to the project")
		}
		return nfs, err
	}

	nfs := make([]namedFormula, 0, len(args))
	for _, arg := range args {
		if fc, found := sl.Find(p.project.Formulas, func(fc formulaConfig) bool {
			return fc.Name == arg
		}); found {
			f, err := formula.Parse(fc.Text)
			if err != nil {
				return nil, fmt.Errorf("formula %q: %w", fc.Name, err)
			}
			nfs = append(nfs, namedFormula{name: fc.Name, f: f})
			continue
		}

		f, err := formula.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", arg, err)
		}
		nfs = append(nfs, namedFormula{f: f})
	}
	return nfs, nil
}
