package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type analysisConfig struct {
	variables int
	normalize bool
}

func TestApply(t *testing.T) {
	cfg := &analysisConfig{}

	err := Apply(cfg,
		New(func(c *analysisConfig) error {
			c.variables = 4
			return nil
		}),
		NoError(func(c *analysisConfig) {
			c.normalize = true
		}),
	)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.variables)
	require.True(t, cfg.normalize)
}

func TestApplyStopsOnError(t *testing.T) {
	cfg := &analysisConfig{}
	errBad := errors.New("bad option")

	err := Apply(cfg,
		New(func(c *analysisConfig) error {
			c.variables = 2
			return nil
		}),
		New(func(*analysisConfig) error { return errBad }),
		NoError(func(c *analysisConfig) {
			c.normalize = true
		}),
	)
	require.ErrorIs(t, err, errBad)
	require.Equal(t, 2, cfg.variables)
	require.False(t, cfg.normalize, "options after the failing one must not run")
}

func TestApplyNoOptions(t *testing.T) {
	cfg := &analysisConfig{}
	require.NoError(t, Apply(cfg))
	require.Zero(t, cfg.variables)
}
