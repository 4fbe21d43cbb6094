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

package seq

import (
	"strings"
	"testing"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/sdk/sampler"
)

func newGen(t *testing.T, seed int64, n int, ws []int) *Generator {
	t.Helper()
	g, err := New(core.New(core.Default().New(seed)), n, ws, sampler.KindAlias)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestSameSeedSameSequence(t *testing.T) {
	a := newGen(t, 42, 4, []int{1, 1, 1, 1})
	b := newGen(t, 42, 4, []int{1, 1, 1, 1})
	for i := 0; i < 200; i++ {
		if pa, pb := a.Next(), b.Next(); pa != pb {
			t.Fatalf("pair %d differs: %v vs %v", i, pa, pb)
		}
	}
}

func TestOnlyChosenColors(t *testing.T) {
	g := newGen(t, 7, 3, []int{1, 0, 1, 1})
	cs := g.Colors()
	if len(cs) != 3 {
		t.Fatalf("want 3 colors, got %v", cs)
	}
	for _, c := range cs {
		if c == field.Blue {
			t.Fatalf("zero-weight color chosen: %v", cs)
		}
	}
	allowed := map[field.Color]bool{}
	for _, c := range cs {
		allowed[c] = true
	}
	for i := 0; i < 500; i++ {
		p := g.Next()
		if !allowed[p.Axis] || !allowed[p.Child] {
			t.Fatalf("pair %v uses a color outside %v", p, cs)
		}
	}
}

func TestPeekMatchesNext(t *testing.T) {
	g := newGen(t, 3, 4, []int{1, 1, 1, 1})
	want := g.Peek(Visible)
	if len(want) != Visible || want[0] != g.Current() {
		t.Fatalf("unexpected peek: %v", want)
	}
	if len(g.Peek(10)) != Visible || len(g.Peek(-1)) != 0 {
		t.Fatalf("peek should clamp to 0..%d", Visible)
	}
	for i, p := range want {
		if got := g.Next(); got != p {
			t.Fatalf("next %d = %v, peek said %v", i, got, p)
		}
	}
}

func TestStateRestore(t *testing.T) {
	c := core.New(core.Default().New(11))
	g, err := New(c, 4, []int{3, 1, 1, 1}, sampler.KindLUT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 17; i++ {
		g.Next()
	}
	st := g.State()
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := make([]field.Pair, 30)
	for i := range want {
		want[i] = g.Next()
	}

	if err := c.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := g.SetState(st); err != nil {
		t.Fatalf("set state: %v", err)
	}
	for i, p := range want {
		if got := g.Next(); got != p {
			t.Fatalf("pair %d after restore = %v, want %v", i, got, p)
		}
	}

	if err := g.SetState(State{Colors: "RB", Queue: st.Queue}); err == nil {
		t.Fatalf("expected error for wrong color count")
	}
	if err := g.SetState(State{Colors: st.Colors, Queue: "RB"}); err == nil {
		t.Fatalf("expected error for short queue")
	}
	if err := g.SetState(State{Colors: "RRBY", Queue: st.Queue}); err == nil {
		t.Fatalf("expected error for duplicate colors")
	}
}

func TestSetStateRejectsForeignQueue(t *testing.T) {
	g, err := New(core.New(core.Default().New(5)), 3, []int{1, 1, 1, 1}, sampler.KindLUT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := g.State()
	var missing field.Color
	for _, c := range field.NormalColors {
		if !strings.ContainsRune(st.Colors, rune(c.Char())) {
			missing = c
		}
	}
	if missing == field.Empty {
		t.Fatalf("3-color state should leave one color out: %q", st.Colors)
	}
	own := st.Colors[0]
	bad := string([]byte{missing.Char(), own, own, own, own, own})
	if err := g.SetState(State{Colors: st.Colors, Queue: bad}); errs.Level(err) != errs.Warn {
		t.Fatalf("queue with %c should be rejected as warn, got %v", missing.Char(), err)
	}
	if got := g.State(); got != st {
		t.Fatalf("rejected state must not change the generator: %+v vs %+v", got, st)
	}
	if err := g.SetState(st); err != nil {
		t.Fatalf("own state should restore: %v", err)
	}
}

func TestPairText(t *testing.T) {
	ps, err := ParsePairs("RBygGG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []field.Pair{{Axis: field.Red, Child: field.Blue}, {Axis: field.Yellow, Child: field.Green}, {Axis: field.Green, Child: field.Green}}
	if len(ps) != len(want) {
		t.Fatalf("got %v", ps)
	}
	for i := range want {
		if ps[i] != want[i] {
			t.Fatalf("pair %d = %v, want %v", i, ps[i], want[i])
		}
	}
	if s := FormatPairs(ps); s != "RBYGGG" {
		t.Fatalf("format = %q", s)
	}
	for _, bad := range []string{"R", "R@", "R.", "RX"} {
		if _, err := ParsePairs(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestNewRejects(t *testing.T) {
	c := core.New(core.Default().New(1))
	if _, err := New(nil, 4, []int{1, 1, 1, 1}, ""); err == nil {
		t.Fatalf("expected error for nil core")
	}
	if _, err := New(c, 5, []int{1, 1, 1, 1}, ""); err == nil {
		t.Fatalf("expected error for 5 colors")
	}
	if _, err := New(c, 4, []int{1, 1}, ""); err == nil {
		t.Fatalf("expected error for short weights")
	}
	if _, err := New(c, 4, []int{1, 1, 1, 0}, ""); err == nil {
		t.Fatalf("expected error when too few colors have weight")
	}
}
