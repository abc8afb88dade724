package logger

import (
	"testing"

	"trivia-api/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggerConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "default level", cfg: config.LoggerConfig{}, wantLevel: zapcore.InfoLevel},
		{name: "debug console", cfg: config.LoggerConfig{Level: "debug"}, wantLevel: zapcore.DebugLevel},
		{name: "warn json", cfg: config.LoggerConfig{Level: "WARN", Env: "production"}, wantLevel: zapcore.WarnLevel},
		{name: "bad level", cfg: config.LoggerConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Initialize(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, Get().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Get().Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestGet_BeforeInitialize(t *testing.T) {
	t.Cleanup(Replace(nil))

	assert.NotNil(t, Get())
	assert.NotPanics(t, func() { Get().Info("dropped") })
}

func TestReplace(t *testing.T) {
	assert.NoError(t, Initialize(config.LoggerConfig{}))
	before := Get()
	core, logs := observer.New(zapcore.InfoLevel)

	restore := Replace(zap.New(core))
	Get().Info("captured")
	restore()

	assert.Equal(t, 1, logs.FilterMessage("captured").Len())
	assert.Same(t, before, Get())
}
