package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	log.Info().Str("source", "statement.csv").Msg("loaded rows")
	assert.Contains(t, buf.String(), "loaded rows")

	buf.Reset()
	log.Debug().Msg("suppressed")
	assert.Empty(t, buf.String(), "debug is below the configured level")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, Level(false, true))
	assert.Equal(t, zerolog.ErrorLevel, Level(true, true), "quiet wins over verbose")
	assert.Equal(t, zerolog.DebugLevel, Level(true, false))
	assert.Equal(t, zerolog.InfoLevel, Level(false, false))
}
