package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"loud":    zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Output: &buf, Service: "task-manager"})

	log.Debug().Msg("hidden")
	log.Info().Str("task_id", "t1").Msg("task created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "task created", line["message"])
	assert.Equal(t, "task-manager", line["service"])
	assert.Equal(t, "t1", line["task_id"])
	assert.Contains(t, line, "time")
}

func TestInit_Singleton(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	assert.Panics(t, func() { Get() })

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	log := Get()
	log.Info().Msg("hello")
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}
