package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "console debug", cfg: Config{Level: "debug", Format: "console"}},
		{name: "json production", cfg: Config{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	WithRunID(l, "run-123").Info("tagged")
	WithRunID(l, "").Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "run-123", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}
