package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{Analysis, Output, RawData}, Categories)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "merfish_raw_data", RawData.Dir())
	assert.Equal(t, "/data/src/merfish_analysis/E1", CategoryDir("/data/src", Analysis, "E1"))
	assert.Equal(t, "/data/tgt/merfish_output/E1", CategoryDir("/data/tgt", Output, "E1"))
	assert.Equal(t, "/data/src/merfish_output", ListingDir("/data/src"))
	assert.Equal(t, "/data/src/merfish_raw_data/E1/MERLIN_FINISHED", SentinelPath("/data/src", "E1"))
	assert.Equal(t, "/data/sec/E1", SecondaryDir("/data/sec", "E1"))
}
