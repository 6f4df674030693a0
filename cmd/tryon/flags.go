package main

import (
	"github.com/shouni/gemini-tryon-kit/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagOpacity  = "opacity"
	flagLighting = "lighting"
)

func addAdjustmentFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(flagOpacity, domain.MaxOpacity, "衣服の不透明度 (0.5〜1.0)")
	cmd.Flags().String(flagLighting, string(domain.LightingOriginal), "照明: original, brighter, dimmer のいずれか")
}

// adjustmentsFromFlags はどちらのフラグも明示されていなければ nil を返すのだ。
func adjustmentsFromFlags(fs *pflag.FlagSet) (*domain.Adjustments, error) {
	if !fs.Changed(flagOpacity) && !fs.Changed(flagLighting) {
		return nil, nil
	}

	adj := &domain.Adjustments{}
	if fs.Changed(flagOpacity) {
		v, err := fs.GetFloat64(flagOpacity)
		if err != nil {
			return nil, err
		}
		adj.Opacity = &v
	}
	if fs.Changed(flagLighting) {
		raw, err := fs.GetString(flagLighting)
		if err != nil {
			return nil, err
		}
		l, err := domain.ParseLighting(raw)
		if err != nil {
			return nil, err
		}
		adj.Lighting = l
	}
	return adj, nil
}
