package experiment

import (
	log "github.com/sirupsen/logrus"

	"github.com/scicomp/merscope-transfer/internal/layout"
	"github.com/scicomp/merscope-transfer/internal/report"
	"github.com/scicomp/merscope-transfer/internal/storage"
)

// deleteExperiment removes the local category folders of name and then its
// secondary copy. It must only run after transfer succeeded.
func (p *Processor) deleteExperiment(name string, rep *report.Report) bool {
	done := true
	for _, cat := range layout.Categories {
		if !p.deleteDirectory(layout.CategoryDir(p.cfg.Source, cat, name), rep) {
			done = false
			break
		}
	}

	if done {
		secondary := layout.SecondaryDir(p.cfg.Secondary, name)
		exists, err := p.store.Exists(secondary)
		switch {
		case err != nil:
			rep.AddError("Could not check secondary delete path %s\n%s", secondary, storage.Describe(err))
			done = false
		case !exists:
			log.Warnf("Secondary delete path %s does not exist", secondary)
			rep.AddError("Secondary delete path %s does not exist", secondary)
			done = false
		default:
			done = p.deleteDirectory(secondary, rep)
		}
	}

	if !done {
		rep.AddError("Deletion for %s is incomplete", name)
	}
	return done
}

// deleteDirectory removes the tree at path. A failed tree removal is a failure.
// A top directory left behind gets one plain rmdir; if it still lingers that is
// reported, but later deletions go ahead.
func (p *Processor) deleteDirectory(path string, rep *report.Report) bool {
	if !p.opts.Delete {
		log.Warnf("[dry run] Would delete %s", path)
		rep.AddDeleted(path)
		return true
	}

	if err := p.store.RemoveTree(path); err != nil {
		log.Errorf("Could not delete %s: %v", path, err)
		rep.AddError("Could not remove tree %s\n%s", path, storage.Describe(err))
		return false
	}
	if p.lingers(path) {
		if err := p.store.RemoveDir(path); err != nil {
			rep.AddError("Could not remove directory %s\n%s", path, storage.Describe(err))
		}
	}
	if p.lingers(path) {
		log.Errorf("%s still exists after deletion", path)
		rep.AddError("Despite attempts to delete it, %s still exists", path)
		return true
	}

	log.Warnf("Deleted %s", path)
	rep.AddDeleted(path)
	return true
}

func (p *Processor) lingers(path string) bool {
	exists, err := p.store.Exists(path)
	if err != nil {
		log.Warnf("Could not check %s: %v", path, err)
		return true
	}
	return exists
}
