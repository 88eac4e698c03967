package configwizard

import (
	"testing"

	"github.com/germanamz/abacus/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfigApplyRoundTrip(t *testing.T) {
	cfg := engine.DefaultConfig()

	got, err := FromConfig(cfg).Apply(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestApply(t *testing.T) {
	a := Answers{
		Thousands:     ".",
		Decimal:       ",",
		PressFeedback: "250ms",
		WebAddr:       ":9090",
		MCPName:       "desk",
		LogLevel:      "debug",
	}

	cfg, err := a.Apply(engine.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "1.234,5", cfg.Formatter().Format("1234.5"))
	assert.Equal(t, ":9090", cfg.Web.Addr)
	assert.Equal(t, "desk", cfg.MCP.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "250ms", cfg.PressFeedback().String())
}

func TestApplyRejectsSameSeparators(t *testing.T) {
	a := FromConfig(engine.DefaultConfig())
	a.Decimal = a.Thousands

	_, err := a.Apply(engine.DefaultConfig())
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateDuration(""))
	assert.NoError(t, validateDuration("0"))
	assert.NoError(t, validateDuration("100ms"))
	assert.Error(t, validateDuration("fast"))
	assert.Error(t, validateDuration("-1s"))

	assert.NoError(t, validateAddr("127.0.0.1:8080"))
	assert.NoError(t, validateAddr(":0"))
	assert.Error(t, validateAddr("localhost"))

	assert.NoError(t, validateNonEmpty("abacus"))
	assert.Error(t, validateNonEmpty(""))
}

func TestFormBuilds(t *testing.T) {
	a := FromConfig(engine.DefaultConfig())
	assert.NotNil(t, a.form())
}
