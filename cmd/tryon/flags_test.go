package main

import (
	"bytes"
	"testing"

	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/shouni/gemini-tryon-kit/pkg/prompt"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	addAdjustmentFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestAdjustmentsFromFlags(t *testing.T) {
	t.Run("未指定なら nil なのだ", func(t *testing.T) {
		adj, err := adjustmentsFromFlags(newFlagCmd(t).Flags())
		require.NoError(t, err)
		assert.Nil(t, adj)
	})

	t.Run("opacity と lighting を読み取るのだ", func(t *testing.T) {
		adj, err := adjustmentsFromFlags(newFlagCmd(t, "--opacity", "0.7", "--lighting", "dimmer").Flags())
		require.NoError(t, err)
		require.NotNil(t, adj.Opacity)
		assert.InDelta(t, 0.7, *adj.Opacity, 1e-9)
		assert.Equal(t, domain.LightingDimmer, adj.Lighting)
	})

	t.Run("未知の lighting はエラーなのだ", func(t *testing.T) {
		_, err := adjustmentsFromFlags(newFlagCmd(t, "--lighting", "neon").Flags())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRunPrompt(t *testing.T) {
	t.Run("調整なしは固定テンプレートを出力するのだ", func(t *testing.T) {
		cmd := newFlagCmd(t)
		var out bytes.Buffer
		cmd.SetOut(&out)

		require.NoError(t, runPrompt(cmd, nil))
		assert.Equal(t, prompt.BaseTemplate, out.String())
	})

	t.Run("範囲外の opacity はエラーなのだ", func(t *testing.T) {
		cmd := newFlagCmd(t, "--opacity", "0.3")
		cmd.SetOut(&bytes.Buffer{})
		assert.ErrorIs(t, runPrompt(cmd, nil), domain.ErrInvalidInput)
	})
}

func TestAnyGCS(t *testing.T) {
	assert.True(t, anyGCS([]string{"me.jpg", " gs://bucket/kurta.png"}))
	assert.False(t, anyGCS([]string{"me.jpg", "https://example.com/kurta.png"}))
}
