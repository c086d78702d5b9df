package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelInfo, false)

	logger.Info("call failed", "error", errors.New("boom"))

	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "error=")
}

func TestNewWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelWarn, true)

	logger.Info("hidden")
	logger.Warn("shown", "node_id", "2")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"node_id":"2"`)
}
