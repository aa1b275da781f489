package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data"), ExpandTilde("~/data"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "rel", ExpandTilde("rel"))
}

func TestSendNotification(t *testing.T) {
	var calls []string
	orig := notify
	t.Cleanup(func() { notify = orig })
	notify = func(title, message string) error {
		calls = append(calls, title+": "+message)
		return errors.New("no display")
	}

	SendNotification(false, "MERSCOPE transfer", "skipped")
	assert.Empty(t, calls)

	SendNotification(true, "MERSCOPE transfer", "1 transferred")
	assert.Equal(t, []string{"MERSCOPE transfer: 1 transferred"}, calls)
}
