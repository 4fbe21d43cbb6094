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

package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/chainlab/spec"
	"github.com/zintix-labs/chainlab/stats"
)

// buildReport 每局 turns 手，scores 為每局總分；第 i 局最大連鎖為 i%3
func buildReport(scores []int, turns int) *stats.Report {
	r := stats.NewReport("TestGame", spec.GID(7), 4)
	s := r.Summary
	for i, sc := range scores {
		s.Games++
		s.Turns += turns
		s.TotalScore += sc
		mc := i % 3
		s.SumMaxChain += mc
		s.MaxChain = max(s.MaxChain, mc)
		r.Chain.MaxChainCollect[mc]++
		r.Chain.ChainCollect[0] += turns - 1
		r.Chain.ChainCollect[mc]++
		if mc > 0 {
			s.Fires++
		}
		r.Dist.ScoreCollect[stats.Buckets.Index(sc)]++
		r.Scores = append(r.Scores, float64(sc))
	}
	return r
}

func TestReportDone(t *testing.T) {
	scores := []int{0, 100, 200, 300, 400}
	rep := buildReport(scores, 10)
	rep.Done()

	s := rep.Summary
	if s.MeanScore != 200 {
		t.Fatalf("mean got %.3f want 200", s.MeanScore)
	}
	// 樣本標準差
	wantStd := math.Sqrt((200*200*2 + 100*100*2) / 4.0)
	if math.Abs(s.ScoreStd-wantStd) > 1e-9 {
		t.Fatalf("std got %.6f want %.6f", s.ScoreStd, wantStd)
	}
	if math.Abs(s.ScoreCv-wantStd/200) > 1e-9 {
		t.Fatalf("cv got %.6f", s.ScoreCv)
	}
	if !(s.ScoreCI.Lo <= s.MeanScore && s.MeanScore <= s.ScoreCI.Hi) {
		t.Fatalf("mean %.1f outside CI %+v", s.MeanScore, s.ScoreCI)
	}
	if s.MeanTurns != 10 {
		t.Fatalf("mean turns got %.2f", s.MeanTurns)
	}
	if rep.Dist.Median != 200 {
		t.Fatalf("median got %.1f want 200", rep.Dist.Median)
	}
	if rep.Dist.P90 != 400 {
		t.Fatalf("p90 got %.1f want 400", rep.Dist.P90)
	}
	if !(rep.Dist.MedianCI.Lo <= rep.Dist.Median && rep.Dist.Median <= rep.Dist.MedianCI.Hi) {
		t.Fatalf("median outside CI %+v", rep.Dist.MedianCI)
	}

	sum := 0.0
	for _, d := range rep.Dist.ScoreDist {
		sum += d
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("score dist sums to %.12f", sum)
	}
	sum = 0
	for _, d := range rep.Chain.ChainDist {
		sum += d
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("chain dist sums to %.12f", sum)
	}

	mean := s.MeanScore
	rep.Summary.TotalScore = -1
	rep.Done() // 重複呼叫無作用
	if rep.Summary.MeanScore != mean || !rep.IsDone() {
		t.Fatalf("second Done changed report")
	}
}

func TestReportRates(t *testing.T) {
	rep := buildReport([]int{10, 10, 10, 10}, 5)
	rep.Summary.GameOvers = 4
	rep.Done()
	s := rep.Summary

	if s.GameOverRate != 1 || s.GameOverCI.Hi != 1 {
		t.Fatalf("game over rate %.3f CI %+v", s.GameOverRate, s.GameOverCI)
	}
	if s.GameOverCI.Lo <= 0 || s.GameOverCI.Lo >= 1 {
		t.Fatalf("game over CI lo %.3f", s.GameOverCI.Lo)
	}
	if s.AllClearRate != 0 || s.AllClearCI.Lo != 0 {
		t.Fatalf("all clear rate %.3f CI %+v", s.AllClearRate, s.AllClearCI)
	}
	if s.AllClearCI.Hi <= 0 || s.AllClearCI.Hi >= 1 {
		t.Fatalf("all clear CI hi %.3f", s.AllClearCI.Hi)
	}
	if s.ScoreStd != 0 || s.ScoreCI.Lo != 10 || s.ScoreCI.Hi != 10 {
		t.Fatalf("constant scores: std %.3f CI %+v", s.ScoreStd, s.ScoreCI)
	}
	if s.FireRate != float64(s.Fires)/20 {
		t.Fatalf("fire rate got %.3f", s.FireRate)
	}
}

func TestReportEmpty(t *testing.T) {
	rep := stats.NewReport("Empty", 1, 4)
	rep.Done()
	if rep.Summary.MeanScore != 0 || rep.Summary.GameOverRate != 0 {
		t.Fatalf("empty report should stay zero: %+v", rep.Summary)
	}
	if !strings.Contains(rep.Table(), "Empty") {
		t.Fatalf("table missing title")
	}
}

func TestBucketsIndex(t *testing.T) {
	cases := map[int]int{
		-5:      0,
		0:       0,
		1:       1,
		999:     1,
		1000:    2,
		4999:    2,
		5000:    3,
		99999:   6,
		100000:  7,
		5000000: 7,
	}
	for score, want := range cases {
		if got := stats.Buckets.Index(score); got != want {
			t.Fatalf("Index(%d) got %d want %d", score, got, want)
		}
	}
	if len(stats.Buckets.Labels()) != stats.Buckets.Len() {
		t.Fatalf("labels length mismatch")
	}
}

func TestTable(t *testing.T) {
	rep := buildReport([]int{100, 2000, 30000}, 8)
	if rep.IsDone() {
		t.Fatalf("report should not be finalized before Table")
	}
	out := rep.Table()
	if !rep.IsDone() || rep.Summary.MeanScore != 10700 {
		t.Fatalf("Table should finalize the report: %+v", rep.Summary)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	w := len(lines[0])
	for i, ln := range lines {
		if len(ln) != w {
			t.Fatalf("line %d width %d want %d:\n%s", i, len(ln), w, out)
		}
	}
	for _, key := range []string{"Mean Score", "Game Over Rate", "10,700.0"} {
		if !strings.Contains(out, key) {
			t.Fatalf("table missing %q:\n%s", key, out)
		}
	}
}

func TestRenderers(t *testing.T) {
	rep := buildReport([]int{0, 500, 1500}, 6)

	var jb bytes.Buffer
	if err := rep.WriteWith(&jb, stats.RenderByName("json")); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back stats.Report
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if back.Summary.Games != 3 || back.Summary.GameId != 7 {
		t.Fatalf("json summary mismatch: %+v", back.Summary)
	}
	if strings.Contains(jb.String(), "Scores") {
		t.Fatalf("raw scores should not be rendered")
	}

	var yb bytes.Buffer
	if err := rep.WriteWith(&yb, stats.RenderByName("yaml")); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yb.String(), "chaincollect: [") {
		t.Fatalf("yaml lists should be flow style:\n%s", yb.String())
	}

	var tb bytes.Buffer
	if err := rep.WriteWith(&tb, stats.RenderByName("table")); err != nil {
		t.Fatalf("table: %v", err)
	}
	if tb.String() != rep.Table() {
		t.Fatalf("table render mismatch")
	}
	if stats.RenderByName("xml") != nil {
		t.Fatalf("unknown render should be nil")
	}
}
