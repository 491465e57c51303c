package commands

import (
	"os"
	"sort"

	"github.com/teranos/gwkit/am"
	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/graph"
	"github.com/teranos/gwkit/gw/parser"
	"github.com/teranos/gwkit/logger"
)

// parseOptions maps the parse section of the config onto parser options.
// A set --no-fail flag wins over the config.
func parseOptions(cfg *am.Config, noFail bool) parser.Options {
	return parser.Options{
		NoFail:   noFail || cfg.Parse.NoFail,
		GwPlus:   cfg.Parse.GwPlus,
		Encoding: cfg.Parse.Encoding,
		Logger:   logger.ComponentLogger("gw.parser"),
	}
}

// loadSource parses and resolves one GW file. On a parse failure in strict
// mode the partial result is still returned alongside the error.
func loadSource(path string, opts parser.Options) (*parser.Result, *graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.NewNotFoundError("source file %s", path)
		}
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	log := logger.ChildLogger(logger.ComponentLogger("gw"), logger.FieldFile, path)
	if opts.Logger == nil {
		opts.Logger = logger.ComponentLogger("gw.parser")
	}
	opts.Logger = logger.ChildLogger(opts.Logger, logger.FieldFile, path)

	res, err := parser.Parse(f, opts)
	if err != nil {
		return res, nil, err
	}
	b := graph.NewBuilder(log)
	for _, blk := range res.Blocks {
		b.Add(blk)
	}
	g := b.Finish()
	log.Infow("Resolved source",
		logger.FieldBlocks, len(res.Blocks),
		logger.FieldPersons, len(g.Persons),
		logger.FieldFamilies, len(g.Families),
		logger.FieldDummies, len(g.Dummies()))
	return res, g, nil
}

// Report summarizes a parsed and resolved source.
type Report struct {
	File     string         `json:"file" yaml:"file"`
	Encoding string         `json:"encoding" yaml:"encoding"`
	GwPlus   bool           `json:"gwplus" yaml:"gwplus"`
	Blocks   map[string]int `json:"blocks" yaml:"blocks"`
	Persons  int            `json:"persons" yaml:"persons"`
	Families int            `json:"families" yaml:"families"`
	Dummies  []string       `json:"dummies" yaml:"dummies"`
	Errors   []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func buildReport(path string, res *parser.Result, g *graph.Graph) Report {
	r := Report{
		File:     path,
		Encoding: res.Encoding,
		GwPlus:   res.GwPlus,
		Blocks:   map[string]int{},
		Persons:  len(g.Persons),
		Families: len(g.Families),
		Dummies:  []string{},
	}
	for _, blk := range res.Blocks {
		r.Blocks[blk.Tag()]++
	}
	for _, p := range g.Dummies() {
		r.Dummies = append(r.Dummies, p.Key.String())
	}
	sort.Strings(r.Dummies)
	for _, e := range res.Errors {
		r.Errors = append(r.Errors, e.Error())
	}
	return r
}
