// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package seq 落下序列：每局開始時依權重選出使用的顏色，之後逐組抽出 Pair。
//
// 序列完全由 core.Core 決定；同一個 seed (或同一份 Core 快照) 會得到同一串 Pair。
package seq

import (
	"strings"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/sdk/sampler"
	"github.com/zintix-labs/chainlab/spec"
)

// Visible 玩家可以看到的組數 (目前這組加上兩組預告)
const Visible = 3

// Generator 逐組產生 Pair，並保留 Visible 組預告
type Generator struct {
	core      *core.Core
	numColors int
	weights   []int // 依 field.NormalColors 順序
	kind      sampler.Kind

	colors []field.Color  // 本局使用的顏色
	picker sampler.Picker // 對 colors 的抽樣器
	queue  [Visible]field.Pair
}

// New 建立序列產生器並開始第一局
func New(c *core.Core, numColors int, weights []int, kind sampler.Kind) (*Generator, error) {
	if c == nil {
		return nil, errs.NewFatal("seq: core required")
	}
	if numColors < 1 || numColors > field.NumNormalColors {
		return nil, errs.Fatalf("seq: num colors must be 1..%d", field.NumNormalColors)
	}
	if len(weights) != field.NumNormalColors {
		return nil, errs.Fatalf("seq: need %d weights", field.NumNormalColors)
	}
	g := &Generator{
		core:      c,
		numColors: numColors,
		weights:   append([]int(nil), weights...),
		kind:      kind,
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromSetting 依設定檔建立 (ss 需已 Init)
func FromSetting(c *core.Core, ss *spec.SeqSetting) (*Generator, error) {
	return New(c, ss.NumColors, ss.ColorWeights, sampler.Kind(ss.Sampler))
}

// Reset 開新局：重新選色並填滿預告
func (g *Generator) Reset() error {
	idx, err := sampler.WeightedSample(g.core, g.weights, g.numColors)
	if err != nil {
		return err
	}
	if len(idx) < g.numColors {
		return errs.Fatalf("seq: only %d colors can be chosen, need %d", len(idx), g.numColors)
	}
	return g.setColors(idx)
}

func (g *Generator) setColors(idx []int) error {
	if err := g.useColors(idx); err != nil {
		return err
	}
	for i := range g.queue {
		g.queue[i] = g.draw()
	}
	return nil
}

func (g *Generator) draw() field.Pair {
	return field.Pair{
		Axis:  g.colors[g.picker.Pick(g.core)],
		Child: g.colors[g.picker.Pick(g.core)],
	}
}

// Colors 本局使用的顏色
func (g *Generator) Colors() []field.Color {
	return append([]field.Color(nil), g.colors...)
}

// Current 目前要放的一組
func (g *Generator) Current() field.Pair {
	return g.queue[0]
}

// Peek 目前這組與之後的預告，最多 Visible 組
func (g *Generator) Peek(n int) []field.Pair {
	n = min(max(n, 0), Visible)
	return append([]field.Pair(nil), g.queue[:n]...)
}

// Next 取出目前這組，預告往前推一格並補上新抽的一組
func (g *Generator) Next() field.Pair {
	p := g.queue[0]
	copy(g.queue[:], g.queue[1:])
	g.queue[Visible-1] = g.draw()
	return p
}

// State 序列的可保存狀態 (不含 Core)
type State struct {
	Colors string `json:"colors"`
	Queue  string `json:"queue"`
}

// State 回傳目前的顏色組與預告
func (g *Generator) State() State {
	var sb strings.Builder
	for _, c := range g.colors {
		sb.WriteByte(c.Char())
	}
	return State{Colors: sb.String(), Queue: FormatPairs(g.queue[:])}
}

// SetState 還原 State；Core 需由呼叫端另外還原
func (g *Generator) SetState(st State) error {
	if len(st.Colors) != g.numColors {
		return errs.Warnf("seq state: want %d colors, got %q", g.numColors, st.Colors)
	}
	var used [field.NumNormalColors]bool
	idx := make([]int, 0, len(st.Colors))
	for i := 0; i < len(st.Colors); i++ {
		c, ok := field.ColorFromChar(st.Colors[i])
		if !ok || !c.IsNormal() {
			return errs.Warnf("seq state: bad color %q", st.Colors[i])
		}
		k := int(c - field.Red)
		if used[k] {
			return errs.Warnf("seq state: duplicate color %q in %q", st.Colors[i], st.Colors)
		}
		used[k] = true
		idx = append(idx, k)
	}
	pairs, err := ParsePairs(st.Queue)
	if err != nil {
		return err
	}
	if len(pairs) != Visible {
		return errs.Warnf("seq state: want %d queued pairs, got %d", Visible, len(pairs))
	}
	for _, p := range pairs {
		if !used[p.Axis-field.Red] || !used[p.Child-field.Red] {
			return errs.Warnf("seq state: queued pair %v uses a color outside %q", p, st.Colors)
		}
	}
	if err := g.useColors(idx); err != nil {
		return err
	}
	copy(g.queue[:], pairs)
	return nil
}

// useColors 以 NormalColors 的索引設定本局顏色與抽樣器
func (g *Generator) useColors(idx []int) error {
	colors := make([]field.Color, len(idx))
	ws := make([]int, len(idx))
	for i, k := range idx {
		colors[i] = field.NormalColors[k]
		ws[i] = g.weights[k]
	}
	p, err := sampler.NewPicker(g.kind, ws)
	if err != nil {
		return err
	}
	g.colors = colors
	g.picker = p
	return nil
}

// FormatPairs 每組兩個字元 (軸、子)，例如 "RBYY"
func FormatPairs(ps []field.Pair) string {
	b := make([]byte, 0, 2*len(ps))
	for _, p := range ps {
		b = append(b, p.Axis.Char(), p.Child.Char())
	}
	return string(b)
}

// ParsePairs FormatPairs 的反向；只接受一般顏色
func ParsePairs(s string) ([]field.Pair, error) {
	s = strings.TrimSpace(s)
	if len(s)%2 != 0 {
		return nil, errs.Warnf("pair text %q has odd length", s)
	}
	ps := make([]field.Pair, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		a, ok1 := field.ColorFromChar(s[i])
		c, ok2 := field.ColorFromChar(s[i+1])
		if !ok1 || !ok2 || !a.IsNormal() || !c.IsNormal() {
			return nil, errs.Warnf("pair text %q: invalid pair at %d", s, i/2)
		}
		ps = append(ps, field.Pair{Axis: a, Child: c})
	}
	return ps, nil
}
