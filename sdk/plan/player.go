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

package plan

import (
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

// Player 依目前盤面與可見的序列 (第一組是這一手) 決定放法。
// 沒有任何合法放法時回傳 false。
type Player interface {
	Name() string
	Decide(f *field.Field, pairs []field.Pair) (field.Decision, bool)
}

// NewPlayer 依設定建立 Player (ps 需已 Init)
func NewPlayer(ps *spec.PlaySetting, r *field.Rules, c *core.Core) (Player, error) {
	switch ps.Player {
	case spec.PlayerGreedy:
		var gp GreedyParams
		if err := spec.DecodeParams(ps.Params, &gp); err != nil {
			return nil, err
		}
		return NewGreedy(r, ps.Depth, gp), nil
	case spec.PlayerRandom:
		if c == nil {
			return nil, errs.NewFatal("random player needs a core")
		}
		return NewRandom(c), nil
	default:
		return nil, errs.Fatalf("unknown player %q", ps.Player)
	}
}

// GreedyParams 評分權重；全為 0 時只比總分
type GreedyParams struct {
	ChainWeight   int `yaml:"chain_weight"`   // 每一連鎖加分
	HeightPenalty int `yaml:"height_penalty"` // 最高列每一格扣分
	LinkBonus     int `yaml:"link_bonus"`     // 每個與同色相鄰的格子加分
}

// Greedy 列舉 depth 組內所有放法，挑評分最高者的第一手。
// 同分時依序比較：最高列較低、frame 較少、列舉順序較前。
type Greedy struct {
	r      *field.Rules
	depth  int
	params GreedyParams

	best     Plan
	bestEval int
	found    bool
}

// NewGreedy depth 會被限制在 1 以上
func NewGreedy(r *field.Rules, depth int, p GreedyParams) *Greedy {
	return &Greedy{r: r, depth: max(depth, 1), params: p}
}

func (g *Greedy) Name() string { return spec.PlayerGreedy }

// Decide 實作 Player
func (g *Greedy) Decide(f *field.Field, pairs []field.Pair) (field.Decision, bool) {
	if len(pairs) == 0 {
		return field.Decision{}, false
	}
	if len(pairs) > g.depth {
		pairs = pairs[:g.depth]
	}
	g.found = false
	Iterate(g.r, f, pairs, g.consider)
	if g.found {
		return g.best.First(), true
	}
	return anyLegal(f, pairs[0])
}

func (g *Greedy) consider(p *Plan) {
	ev := g.Evaluate(p)
	if g.found && !g.better(ev, p) {
		return
	}
	g.found = true
	g.bestEval = ev
	g.best.Decisions = append(g.best.Decisions[:0], p.Decisions...)
	g.best.Field = p.Field
	g.best.Frames = p.Frames
}

func (g *Greedy) better(ev int, p *Plan) bool {
	if ev != g.bestEval {
		return ev > g.bestEval
	}
	if h, bh := maxHeight(&p.Field), maxHeight(&g.best.Field); h != bh {
		return h < bh
	}
	return p.Frames < g.best.Frames
}

// Evaluate 盤面評分
func (g *Greedy) Evaluate(p *Plan) int {
	ev := p.Score + g.params.ChainWeight*p.MaxChains
	if g.params.HeightPenalty != 0 {
		ev -= g.params.HeightPenalty * maxHeight(&p.Field)
	}
	if g.params.LinkBonus != 0 {
		ev += g.params.LinkBonus * linkedCells(&p.Field)
	}
	return ev
}

func maxHeight(f *field.Field) int {
	h := 0
	for x := 1; x <= field.Width; x++ {
		h = max(h, f.Height(x))
	}
	return h
}

// linkedCells 與至少一個同色格相鄰的格子數
func linkedCells(f *field.Field) int {
	n := 0
	for x := 1; x <= field.Width; x++ {
		for y := 1; y <= min(f.Height(x), field.VisibleHeight); y++ {
			if f.Color(x, y).IsNormal() && f.IsConnected(x, y) {
				n++
			}
		}
	}
	return n
}

// anyLegal 所有放法都會結束時，仍回傳第一個放得下的放法讓對局收尾
func anyLegal(f *field.Field, p field.Pair) (field.Decision, bool) {
	for _, d := range Candidates(p) {
		next := *f
		if next.DropPair(d, p) {
			return d, true
		}
	}
	return field.Decision{}, false
}

// Random 在不會立刻結束的放法中均勻挑一個
type Random struct {
	core *core.Core
	buf  []field.Decision
}

func NewRandom(c *core.Core) *Random {
	return &Random{core: c, buf: make([]field.Decision, 0, len(field.AllDecisions))}
}

func (r *Random) Name() string { return spec.PlayerRandom }

// Decide 實作 Player
func (r *Random) Decide(f *field.Field, pairs []field.Pair) (field.Decision, bool) {
	if len(pairs) == 0 {
		return field.Decision{}, false
	}
	p := pairs[0]
	r.buf = r.buf[:0]
	for _, d := range Candidates(p) {
		next := *f
		if !next.DropPair(d, p) {
			continue
		}
		next.SimulateAfter(d)
		if !next.IsDead() {
			r.buf = append(r.buf, d)
		}
	}
	if len(r.buf) == 0 {
		return anyLegal(f, p)
	}
	return r.buf[r.core.IntN(len(r.buf))], true
}
