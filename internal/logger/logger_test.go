package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsZerologLogger(t *testing.T) {
	log := New("scheduler")
	require.NotNil(t, log)
	assert.IsType(t, &ZerologLogger{}, log)
}

func TestZerologLoggerMethods(t *testing.T) {
	log := NewZerologLogger("test")
	assert.NotPanics(t, func() {
		log.Debugf("debug %s", "message")
		log.Debugw("structured", map[string]any{"key": "value", "count": 3})
		log.Infof("info %d", 1)
		log.Warnf("warn")
		log.Errorf("error: %v", assert.AnError)
	})
}

func TestZerologLoggerDevEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	log := NewZerologLogger("test")
	assert.NotPanics(t, func() { log.Infof("console output") })
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	assert.NotPanics(t, func() {
		log.Debugf("ignored")
		log.Debugw("ignored", nil)
		log.Infof("ignored")
		log.Warnf("ignored")
		log.Errorf("ignored")
	})
}
