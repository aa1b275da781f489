// Package experiment moves finished MERSCOPE experiments to central storage.
//
// For each experiment name found under source/merfish_output the Processor
// checks that all category folders exist, that acquisition has settled, copies
// the folders to the target and, only after every copy succeeded, deletes the
// local folders and the secondary copy. Without the Transfer or Delete option
// the corresponding step is logged and reported but the disk is left alone.
package experiment

import (
	"errors"
	"fmt"
	iofs "io/fs"

	log "github.com/sirupsen/logrus"

	"github.com/scicomp/merscope-transfer/internal/config"
	"github.com/scicomp/merscope-transfer/internal/excluder"
	"github.com/scicomp/merscope-transfer/internal/layout"
	"github.com/scicomp/merscope-transfer/internal/report"
	"github.com/scicomp/merscope-transfer/internal/storage"
)

// ErrListingMissing means the experiment listing directory does not exist.
var ErrListingMissing = errors.New("could not find source directory")

// Options selects which steps really touch the disk.
type Options struct {
	Transfer bool // copy to target; otherwise simulate
	Delete   bool // delete source and secondary; otherwise simulate
}

// Processor runs one pass over the source tree.
type Processor struct {
	cfg     *config.Config
	store   *storage.Storage
	ex      *excluder.Excluder
	checker *Checker
	opts    Options
}

// NewProcessor returns a Processor. ex may be nil.
func NewProcessor(cfg *config.Config, store *storage.Storage, ex *excluder.Excluder, opts Options) *Processor {
	return &Processor{
		cfg:     cfg,
		store:   store,
		ex:      ex,
		checker: NewChecker(store, cfg.Source, config.MinimumAge),
		opts:    opts,
	}
}

// Run processes every experiment in name order and returns what happened.
// Only a missing or unreadable listing directory is returned as an error;
// everything else ends up in the report.
func (p *Processor) Run() (*report.Report, error) {
	rep := report.New()

	dir := layout.ListingDir(p.cfg.Source)
	log.Infof("Reading experiments from %s", dir)
	names, err := p.store.ListNames(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w %s", ErrListingMissing, dir)
		}
		return nil, fmt.Errorf("could not read experiments from %s: %w", dir, err)
	}
	if len(names) == 0 {
		log.Info("No experiments found")
		return rep, nil
	}

	// Checked once per run; no experiment can be handled without it
	if ok, err := p.store.Exists(p.cfg.Target); err != nil || !ok {
		log.Errorf("Could not find target path %s", p.cfg.Target)
		rep.AddError("Could not find target path %s", p.cfg.Target)
		return rep, nil
	}

	for _, name := range names {
		p.process(name, rep)
	}
	return rep, nil
}

// process runs the gates for a single experiment and, if they pass, the
// transfer followed by the deletion.
func (p *Processor) process(name string, rep *report.Report) {
	if p.ex.IsExcluded(name) {
		log.Debugf("Excluded: %s", name)
		return
	}

	for _, cat := range layout.Categories {
		dir := layout.CategoryDir(p.cfg.Source, cat, name)
		ok, err := p.store.Exists(dir)
		if err != nil {
			log.Warnf("Could not check %s: %v", dir, err)
			return
		}
		if !ok {
			log.Debugf("%s is not in the required subfolders", name)
			return
		}
	}

	log.Info(name)
	if !p.checker.Ready(name) {
		return
	}
	if !p.transfer(name, rep) {
		return
	}
	p.deleteExperiment(name, rep)
}
