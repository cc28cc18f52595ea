package logger

import (
	"testing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"trace":   log.LevelTrace,
		"DEBUG":   log.LevelDebug,
		" info ":  log.LevelInfo,
		"warning": log.LevelWarn,
		"warn":    log.LevelWarn,
		"error":   log.LevelError,
	}
	for name, want := range cases {
		level, ok := ParseLevel(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, level, name)
	}

	level, ok := ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, log.LevelInfo, level)
}
