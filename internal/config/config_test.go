package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quickdoc/internal/hover"
)

func env(vals map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vals[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Hover.Enabled)
	assert.Zero(t, cfg.Hover.DelayMS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.UI.Gutter)
	assert.Equal(t, "default", cfg.UI.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestHoverDelay(t *testing.T) {
	tests := []struct {
		name    string
		delayMS int
		env     map[string]string
		want    time.Duration
	}{
		{"default", 0, nil, hover.DefaultDelay},
		{"file", 250, nil, 250 * time.Millisecond},
		{"env wins", 250, map[string]string{EnvDelay: "40"}, 40 * time.Millisecond},
		{"env equal to default still wins", 250, map[string]string{EnvDelay: "500"}, 500 * time.Millisecond},
		{"bad env falls back to file", 250, map[string]string{EnvDelay: "soon"}, 250 * time.Millisecond},
		{"negative env", 0, map[string]string{EnvDelay: "-3"}, hover.DefaultDelay},
		{"empty env", 0, map[string]string{EnvDelay: ""}, hover.DefaultDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Hover.DelayMS = tt.delayMS
			assert.Equal(t, tt.want, cfg.HoverDelay(env(tt.env)))
		})
	}
}

func TestHoverDelayNilLookup(t *testing.T) {
	assert.Equal(t, hover.DefaultDelay, Default().HoverDelay(nil))
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "/nope/config.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte(`
[hover]
enabled = false
delay_ms = 120

[log]
file = "/tmp/q.log"
`), 0o644))

	cfg, err := Load(fs, "/c.toml")
	require.NoError(t, err)
	assert.False(t, cfg.Hover.Enabled)
	assert.Equal(t, 120, cfg.Hover.DelayMS)
	assert.Equal(t, "/tmp/q.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.UI.Gutter)
}

func TestLoadSyntaxError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("[hover]\nenabled = = true\n"), 0o644))

	cfg, err := Load(fs, "/c.toml")
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/c.toml", pe.Path)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Error(), "line 2")
}

func TestLoadUnknownKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("[hover]\nspeed = 3\n"), 0o644))

	_, err := Load(fs, "/c.toml")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "hover.speed")
}

func TestLoadInvalidValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("[log]\nlevel = \"loud\"\n"), 0o644))

	_, err := Load(fs, "/c.toml")
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("[hover]\ndelay_ms = -1\n"), 0o644))
	_, err = Load(fs, "/c.toml")
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("[ui]\ntheme = \"neon\"\n"), 0o644))
	_, err = Load(fs, "/c.toml")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestParseErrorFormatting(t *testing.T) {
	assert.Equal(t, "parse error in a: m", (&ParseError{Path: "a", Message: "m"}).Error())
	assert.Equal(t, "parse error in a at line 3: m", (&ParseError{Path: "a", Line: 3, Message: "m"}).Error())
	assert.Equal(t, "parse error in a at line 3, column 4: m", (&ParseError{Path: "a", Line: 3, Column: 4, Message: "m"}).Error())
}
