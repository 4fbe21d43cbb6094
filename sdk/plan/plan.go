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

// Package plan 列舉接下來幾組的所有放法，並提供依列舉結果挑選放法的 Player。
package plan

import (
	"github.com/zintix-labs/chainlab/sdk/field"
)

// Plan 依序放下 Decisions 之後的盤面與累計結果
type Plan struct {
	Decisions []field.Decision `json:"decisions"`
	Field     field.Field      `json:"-"`
	Last      field.Result     `json:"last"`       // 最後一手引發的連鎖
	Score     int              `json:"score"`      // 各手得分總和
	MaxChains int              `json:"max_chains"` // 各手連鎖數的最大值
	Splits    int              `json:"splits"`     // 軸與子分開落下的手數
	Frames    int              `json:"frames"`     // 落下加上連鎖的 frame 總和
}

// First 第一手
func (p *Plan) First() field.Decision {
	return p.Decisions[0]
}

// Fired 最後一手有引發連鎖
func (p *Plan) Fired() bool {
	return p.Last.Chains > 0
}

// Clone 回呼中的 *Plan 會被重用，需要保留時先複製
func (p *Plan) Clone() Plan {
	c := *p
	c.Decisions = append([]field.Decision(nil), p.Decisions...)
	return c
}

var repDecisions = func() []field.Decision {
	ds := make([]field.Decision, 0, 11)
	for _, d := range field.AllDecisions {
		if d.R == 0 || d.R == 1 {
			ds = append(ds, d)
		}
	}
	return ds
}()

// Candidates p 的候選放法；兩格同色時去掉與其他放法結果相同的旋轉
func Candidates(p field.Pair) []field.Decision {
	if p.IsRep() {
		return repDecisions
	}
	return field.AllDecisions
}

// Iterate 列舉依序放下 pairs 的所有合法放法，每種組合回呼一次，回傳回呼次數。
//
// 放不下或落定後出現位置被佔住的放法會被略過，不再往下展開。
// 回呼收到的 *Plan 在下次回呼前有效。
func Iterate(r *field.Rules, f *field.Field, pairs []field.Pair, fn func(*Plan)) int {
	if len(pairs) == 0 {
		return 0
	}
	it := iterator{
		r:     r,
		pairs: pairs,
		fn:    fn,
		plan:  Plan{Decisions: make([]field.Decision, 0, len(pairs))},
	}
	it.walk(f, 0, acc{})
	return it.n
}

type acc struct {
	score, maxChains, splits, frames int
}

type iterator struct {
	r     *field.Rules
	pairs []field.Pair
	fn    func(*Plan)
	plan  Plan
	n     int
}

func (it *iterator) walk(f *field.Field, depth int, a acc) {
	pair := it.pairs[depth]
	for _, d := range Candidates(pair) {
		next := *f
		if !next.DropPair(d, pair) {
			continue
		}
		step := a
		step.frames += it.r.FramesToDropNext(f, d)
		if f.IsSplitDecision(d) {
			step.splits++
		}
		res := it.r.SimulateAfter(&next, d)
		if next.IsDead() {
			continue
		}
		step.score += res.Score
		step.maxChains = max(step.maxChains, res.Chains)
		step.frames += res.Frames

		it.plan.Decisions = append(it.plan.Decisions[:depth], d)
		if depth+1 < len(it.pairs) {
			it.walk(&next, depth+1, step)
			continue
		}
		it.plan.Field = next
		it.plan.Last = res
		it.plan.Score = step.score
		it.plan.MaxChains = step.maxChains
		it.plan.Splits = step.splits
		it.plan.Frames = step.frames
		it.n++
		it.fn(&it.plan)
	}
}
