package domain

import (
	"fmt"
	"math"
)

// Lighting は仕上がり画像の明るさ調整です。
type Lighting string

const (
	LightingOriginal Lighting = "original"
	LightingBrighter Lighting = "brighter"
	LightingDimmer   Lighting = "dimmer"
)

const (
	MinOpacity = 0.5
	MaxOpacity = 1.0
)

// Adjustments は再生成時に指定できる任意の調整パラメータです。
// nil やゼロ値は「調整なし」(opacity = 1, lighting = original) と同じ扱いになります。
type Adjustments struct {
	Opacity  *float64
	Lighting Lighting
}

// OpacityValue は未指定なら 1.0 を返します。
func (a *Adjustments) OpacityValue() float64 {
	if a == nil || a.Opacity == nil {
		return MaxOpacity
	}
	return *a.Opacity
}

// LightingValue は未指定なら LightingOriginal を返します。
func (a *Adjustments) LightingValue() Lighting {
	if a == nil || a.Lighting == "" {
		return LightingOriginal
	}
	return a.Lighting
}

// IsDefault は有効な調整が1つも無いかどうかを返します。
func (a *Adjustments) IsDefault() bool {
	return a.OpacityValue() >= MaxOpacity && a.LightingValue() == LightingOriginal
}

// Validate は範囲外の opacity や未知の lighting を InvalidInput として拒否します。
func (a *Adjustments) Validate() error {
	if a == nil {
		return nil
	}
	if op := a.OpacityValue(); math.IsNaN(op) || op < MinOpacity || op > MaxOpacity {
		return &Error{
			Kind:   KindInvalidInput,
			Detail: fmt.Sprintf("opacity %.2f is outside [%.1f, %.1f]", op, MinOpacity, MaxOpacity),
		}
	}
	switch a.LightingValue() {
	case LightingOriginal, LightingBrighter, LightingDimmer:
		return nil
	default:
		return &Error{
			Kind:   KindInvalidInput,
			Detail: fmt.Sprintf("unknown lighting %q", a.Lighting),
		}
	}
}

// ParseLighting は CLI などの文字列入力を Lighting に変換します。
func ParseLighting(s string) (Lighting, error) {
	l := Lighting(s)
	switch l {
	case "", LightingOriginal, LightingBrighter, LightingDimmer:
		return l, nil
	}
	return "", &Error{Kind: KindInvalidInput, Detail: fmt.Sprintf("unknown lighting %q", s)}
}
