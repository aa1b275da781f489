package experiment

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/scicomp/merscope-transfer/internal/layout"
	"github.com/scicomp/merscope-transfer/internal/storage"
)

// Checker decides whether acquisition for an experiment has finished and settled.
type Checker struct {
	store  *storage.Storage
	source string
	minAge time.Duration
	now    func() time.Time
}

// NewChecker returns a Checker for experiments under source.
func NewChecker(store *storage.Storage, source string, minAge time.Duration) *Checker {
	return &Checker{store: store, source: source, minAge: minAge, now: time.Now}
}

// Ready reports whether the MERLIN_FINISHED sentinel exists and is older than
// the minimum age.
func (c *Checker) Ready(name string) bool {
	sentinel := layout.SentinelPath(c.source, name)
	ok, err := c.store.IsFile(sentinel)
	if err != nil {
		log.Warnf("Could not check %s: %v", sentinel, err)
		return false
	}
	if !ok {
		log.Warnf("%s is in process", name)
		return false
	}

	modTime, err := c.store.ModTime(sentinel)
	if err != nil {
		log.Warnf("Could not check %s: %v", sentinel, err)
		return false
	}
	age := c.now().Sub(modTime).Truncate(time.Second)
	if age <= c.minAge {
		log.Warnf("%s is only %s old", name, age)
		return false
	}
	return true
}
