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
	"testing"

	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

var (
	rb = field.Pair{Axis: field.Red, Child: field.Blue}
	rr = field.Pair{Axis: field.Red, Child: field.Red}
	yg = field.Pair{Axis: field.Yellow, Child: field.Green}
)

func TestIterateCounts(t *testing.T) {
	f := field.New()
	cases := []struct {
		pairs []field.Pair
		want  int
	}{
		{[]field.Pair{rb}, 22},
		{[]field.Pair{rr}, 11},
		{[]field.Pair{rb, rr}, 22 * 11},
		{[]field.Pair{rr, rr, rb}, 11 * 11 * 22},
		{nil, 0},
	}
	for _, c := range cases {
		calls := 0
		n := Iterate(&field.DefaultRules, &f, c.pairs, func(*Plan) { calls++ })
		if n != c.want || calls != c.want {
			t.Fatalf("pairs %v: got %d (calls %d), want %d", c.pairs, n, calls, c.want)
		}
	}
	if f.CountCells() != 0 {
		t.Fatalf("iterate must not touch the input field")
	}
}

func TestRepCandidatesAreDistinct(t *testing.T) {
	f := field.MustParse("..B...\nY.RB..")
	seen := map[field.Field]field.Decision{}
	for _, d := range Candidates(rr) {
		next := f
		if !next.DropPair(d, rr) {
			t.Fatalf("%v should fit", d)
		}
		if prev, ok := seen[next]; ok {
			t.Fatalf("%v and %v give the same field", prev, d)
		}
		seen[next] = d
	}
	for _, d := range field.AllDecisions {
		next := f
		next.DropPair(d, rr)
		if _, ok := seen[next]; !ok {
			t.Fatalf("%v gives a field no candidate covers", d)
		}
	}
}

func TestPlanAccumulatesLikeReplay(t *testing.T) {
	base := field.MustParse("B.....\nRB....\nRB....\nGRB...")
	pairs := []field.Pair{rb, yg}
	r := &field.DefaultRules
	fired := 0
	Iterate(r, &base, pairs, func(p *Plan) {
		if len(p.Decisions) != len(pairs) {
			t.Fatalf("plan has %d decisions", len(p.Decisions))
		}
		f := base
		score, frames, splits, maxChains := 0, 0, 0, 0
		var last field.Result
		for i, d := range p.Decisions {
			frames += r.FramesToDropNext(&f, d)
			if f.IsSplitDecision(d) {
				splits++
			}
			if !f.DropPair(d, pairs[i]) {
				t.Fatalf("replay of %v failed", p.Decisions)
			}
			last = r.Simulate(&f)
			score += last.Score
			frames += last.Frames
			maxChains = max(maxChains, last.Chains)
		}
		if !f.Equal(&p.Field) {
			t.Fatalf("%v: field differs\n%s\nvs\n%s", p.Decisions, f.String(), p.Field.String())
		}
		if p.Score != score || p.Frames != frames || p.Splits != splits || p.MaxChains != maxChains || p.Last != last {
			t.Fatalf("%v: plan %+v, replay score=%d frames=%d splits=%d chains=%d", p.Decisions, p, score, frames, splits, maxChains)
		}
		if p.MaxChains > 0 {
			fired++
		}
	})
	if fired == 0 {
		t.Fatalf("some plan should trigger the two-chain")
	}
}

func TestIterateSkipsDeadPlacements(t *testing.T) {
	f := field.New()
	for i := 0; i < field.DeathY-2; i++ {
		f.DropOn(field.DeathX, field.Ojama)
	}
	n := Iterate(&field.DefaultRules, &f, []field.Pair{rb}, func(p *Plan) {
		if p.Field.IsDead() {
			t.Fatalf("%v leaves a dead field", p.Decisions)
		}
		if d := p.First(); d.X == field.DeathX && d.IsVertical() {
			t.Fatalf("%v stacks onto the spawn cell", d)
		}
	})
	if n == 0 || n >= 22 {
		t.Fatalf("expected some placements pruned, got %d", n)
	}
}

func TestPlanClone(t *testing.T) {
	f := field.New()
	var kept []Plan
	Iterate(&field.DefaultRules, &f, []field.Pair{rb, rb}, func(p *Plan) {
		if len(kept) < 2 {
			kept = append(kept, p.Clone())
		}
	})
	if kept[0].Decisions[1] == kept[1].Decisions[1] && kept[0].Decisions[0] == kept[1].Decisions[0] {
		t.Fatalf("clones share decisions: %v %v", kept[0].Decisions, kept[1].Decisions)
	}
}

func TestGreedyFires(t *testing.T) {
	f := field.MustParse("R.....\nR.....")
	g := NewGreedy(&field.DefaultRules, 1, GreedyParams{})
	d, ok := g.Decide(&f, []field.Pair{rr})
	if !ok {
		t.Fatalf("expected a decision")
	}
	next := f
	next.DropPair(d, rr)
	if res := next.SimulateAfter(d); res.Chains != 1 {
		t.Fatalf("greedy picked %v which does not fire", d)
	}
}

func TestGreedyPrefersLowerField(t *testing.T) {
	f := field.New()
	g := NewGreedy(&field.DefaultRules, 2, GreedyParams{})
	d, ok := g.Decide(&f, []field.Pair{rb})
	if !ok || d.IsVertical() {
		t.Fatalf("with no score a flat placement should win, got %v", d)
	}
}

func TestGreedyFallsBackWhenEverythingDies(t *testing.T) {
	f := field.New()
	for x := 1; x <= field.Width; x++ {
		for f.Height(x) < field.VisibleHeight-1 {
			f.DropOn(x, field.Ojama)
		}
	}
	f.DropOn(field.DeathX, field.Ojama)
	g := NewGreedy(&field.DefaultRules, 1, GreedyParams{})
	d, ok := g.Decide(&f, []field.Pair{rb})
	if !ok {
		t.Fatalf("a legal placement still exists")
	}
	next := f
	if !next.DropPair(d, rb) {
		t.Fatalf("fallback %v is not legal", d)
	}
}

func TestRandomPlayer(t *testing.T) {
	f := field.MustParse("..Y...\n.BYR..")
	a := NewRandom(core.New(core.Default().New(5)))
	b := NewRandom(core.New(core.Default().New(5)))
	for i := 0; i < 50; i++ {
		da, oka := a.Decide(&f, []field.Pair{yg})
		db, okb := b.Decide(&f, []field.Pair{yg})
		if !oka || !okb || da != db {
			t.Fatalf("same seed should pick the same move: %v %v", da, db)
		}
		if !da.IsValid() {
			t.Fatalf("invalid decision %v", da)
		}
	}
	if _, ok := a.Decide(&f, nil); ok {
		t.Fatalf("no pairs means no decision")
	}
}

func TestNewPlayerFromSetting(t *testing.T) {
	c := core.New(core.Default().New(1))
	ps := spec.PlaySetting{Player: spec.PlayerGreedy, Params: map[string]any{"chain_weight": 100, "link_bonus": 2}}
	if err := ps.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	p, err := NewPlayer(&ps, &field.DefaultRules, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := p.(*Greedy)
	if !ok || g.params.ChainWeight != 100 || g.params.LinkBonus != 2 || g.depth != 2 {
		t.Fatalf("unexpected player %+v", p)
	}

	bad := spec.PlaySetting{Player: spec.PlayerGreedy, Params: map[string]any{"nope": 1}}
	if err := bad.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := NewPlayer(&bad, &field.DefaultRules, c); err == nil {
		t.Fatalf("expected error for unknown param")
	}

	rnd := spec.PlaySetting{Player: spec.PlayerRandom}
	if err := rnd.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if p, err := NewPlayer(&rnd, &field.DefaultRules, c); err != nil || p.Name() != spec.PlayerRandom {
		t.Fatalf("random player: %v %v", p, err)
	}
}

func TestEvaluateWeights(t *testing.T) {
	p := Plan{Field: field.MustParse("RR....\nBB...."), Score: 10, MaxChains: 2}
	g := NewGreedy(&field.DefaultRules, 1, GreedyParams{ChainWeight: 100, HeightPenalty: 5, LinkBonus: 1})
	want := 10 + 200 - 5*2 + 4
	if ev := g.Evaluate(&p); ev != want {
		t.Fatalf("evaluate = %d, want %d", ev, want)
	}
}
