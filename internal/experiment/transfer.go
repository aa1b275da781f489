package experiment

import (
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/scicomp/merscope-transfer/internal/layout"
	"github.com/scicomp/merscope-transfer/internal/report"
	"github.com/scicomp/merscope-transfer/internal/storage"
)

// transfer copies every category folder of name to the target root. It stops at
// the first failed copy and returns false, in which case nothing may be deleted.
func (p *Processor) transfer(name string, rep *report.Report) bool {
	for _, cat := range layout.Categories {
		src := layout.CategoryDir(p.cfg.Source, cat, name)
		dst := layout.CategoryDir(p.cfg.Target, cat, name)

		if !p.opts.Transfer {
			log.Infof("[dry run] Would copy %s -> %s", src, dst)
			continue
		}

		log.Infof("Copy %s -> %s", src, dst)
		stats, err := p.store.CopyTree(src, dst)
		if err != nil {
			log.Errorf("Could not copy %s: %v", src, err)
			rep.AddError("Could not copy %s to %s\n%s", src, dst, storage.Describe(err))
			return false
		}
		log.Infof("Copied %d files in %d directories (%s) to %s",
			stats.Files, stats.Dirs, humanize.Bytes(uint64(stats.Bytes)), dst)
	}

	rep.AddTransferred(name)
	return true
}
