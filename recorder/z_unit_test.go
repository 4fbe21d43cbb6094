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

package recorder

import (
	"testing"

	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

func game(score, maxChain, turns int, over bool) *buf.GameResult {
	gs := &spec.GameSetting{GameName: "rec", GameID: 9}
	g := buf.NewGameResult(gs, false)
	for i := 0; i < turns; i++ {
		tr := &buf.TurnResult{Turn: i}
		if i == turns-1 {
			tr.Result = field.Result{Chains: maxChain, Score: score}
		}
		g.AppendTurn(tr)
	}
	g.End(over)
	return g
}

func TestRecord(t *testing.T) {
	r := NewGameRecorder("rec", 9)
	r.Record(game(0, 0, 5, true))
	r.Record(game(1200, 3, 10, false))
	r.Record(game(40, 1, 4, false))

	b := r.Basic
	if b.Games != 3 || b.Turns != 19 || b.TotalScore != 1240 {
		t.Fatalf("basic mismatch: %+v", b)
	}
	if b.Fires != 2 || b.GameOvers != 1 || b.MaxChain != 3 || b.SumMaxChain != 4 {
		t.Fatalf("basic mismatch: %+v", b)
	}
	if r.Chain.ChainCollect[0] != 17 || r.Chain.ChainCollect[3] != 1 {
		t.Fatalf("chain collect %v", r.Chain.ChainCollect)
	}
	if r.Chain.MaxChainCollect[0] != 1 || r.Chain.MaxChainCollect[1] != 1 || r.Chain.MaxChainCollect[3] != 1 {
		t.Fatalf("max chain collect %v", r.Chain.MaxChainCollect)
	}
	if r.Dist.ScoreCollect[0] != 1 || r.Dist.ScoreCollect[1] != 1 || r.Dist.ScoreCollect[2] != 1 {
		t.Fatalf("score collect %v", r.Dist.ScoreCollect)
	}

	rep := r.Done()
	if !rep.IsDone() || rep.Summary.Games != 3 {
		t.Fatalf("report not built: %+v", rep.Summary)
	}
	if rep.Summary.GameOverRate != 1.0/3 {
		t.Fatalf("game over rate %.4f", rep.Summary.GameOverRate)
	}
	if rep.Dist.Median != 40 {
		t.Fatalf("median %.1f want 40", rep.Dist.Median)
	}

	// 報表與紀錄員互不影響
	r.Reset()
	if r.Games() != 0 || rep.Summary.Games != 3 || rep.Chain.ChainCollect[0] != 17 {
		t.Fatalf("reset leaked into report")
	}
}

func TestMerge(t *testing.T) {
	a := NewGameRecorder("rec", 9)
	b := NewGameRecorder("rec", 9)
	a.Record(game(100, 1, 3, false))
	b.Record(game(5000, 4, 8, true))
	b.Record(game(0, 0, 2, true))

	m, err := MergeGameRecorder([]*GameRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Games() != 3 || m.Basic.MaxChain != 4 || m.Basic.GameOvers != 2 || m.Basic.Turns != 13 {
		t.Fatalf("merge mismatch: %+v", m.Basic)
	}
	if len(m.scores) != 3 || m.scores[0] != 100 || m.scores[1] != 5000 {
		t.Fatalf("merged scores %v", m.scores)
	}

	other := NewGameRecorder("other", 10)
	if _, err := MergeGameRecorder([]*GameRecorder{a, other}); err == nil {
		t.Fatalf("merging different games should fail")
	}
	if _, err := MergeGameRecorder(nil); err == nil {
		t.Fatalf("merging nothing should fail")
	}
}
