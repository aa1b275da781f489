// Package layout describes where the acquisition system puts experiment data.
//
// Under the source root there are three sibling directories, merfish_raw_data,
// merfish_output and merfish_analysis, each holding one subdirectory per
// experiment. The same structure is reproduced under the target root. The
// secondary root holds one directory per experiment with no category level.
package layout

import (
	"path/filepath"
)

// SentinelName is written into the raw data folder when acquisition is finished.
const SentinelName = "MERLIN_FINISHED"

// Category is one of the per-experiment data folders.
type Category string

const (
	Analysis Category = "analysis"
	Output   Category = "output"
	RawData  Category = "raw_data"
)

// Categories is the order in which folders are copied and deleted.
var Categories = []Category{Analysis, Output, RawData}

// Dir returns the category directory name under a root, e.g. "merfish_raw_data".
func (c Category) Dir() string {
	return "merfish_" + string(c)
}

// CategoryDir returns root/merfish_<category>/<name>.
func CategoryDir(root string, c Category, name string) string {
	return filepath.Join(root, c.Dir(), name)
}

// ListingDir returns the directory whose entries name the experiments.
func ListingDir(source string) string {
	return filepath.Join(source, Output.Dir())
}

// SentinelPath returns the path of the acquisition-finished marker for name.
func SentinelPath(source, name string) string {
	return filepath.Join(CategoryDir(source, RawData, name), SentinelName)
}

// SecondaryDir returns secondary/<name>.
func SecondaryDir(secondary, name string) string {
	return filepath.Join(secondary, name)
}
