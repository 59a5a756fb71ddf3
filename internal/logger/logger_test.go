package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output respects level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "warn", Format: "json", Output: &buf})

		log.Info("dropped")
		log.Warn("kept", "course_id", "c-1")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "c-1", entry["course_id"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "debug", Format: "text", Output: &buf})

		log.Debug("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})
}
