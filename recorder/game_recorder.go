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
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
	"github.com/zintix-labs/chainlab/stats"
)

// ChainLen 連鎖分布的格數 (0..MaxChains)
const ChainLen = field.MaxChains + 1

// GameRecorder 對局紀錄員
//
// GameRecorder 逐局累計結果，並透過 Done 輸出統計報表
type GameRecorder struct {
	GameName string
	GameId   spec.GID
	Basic    *BasicRecord
	Chain    *ChainRecord
	Dist     *DistRecord
	scores   []float64
}

// BasicRecord 基本計數
type BasicRecord struct {
	Games       int
	Turns       int
	TotalScore  int
	TotalFrames int
	Fires       int
	AllClears   int
	GameOvers   int
	MaxChain    int
	SumMaxChain int
}

// ChainRecord 連鎖數落點
type ChainRecord struct {
	ChainCollect    []int // 以手數計
	MaxChainCollect []int // 以局數計
}

// DistRecord 單局總分落點
type DistRecord struct {
	Bucket       *stats.ScoreBuckets
	ScoreCollect []int
}

func NewGameRecorder(name string, id spec.GID) *GameRecorder {
	return &GameRecorder{
		GameName: name,
		GameId:   id,
		Basic:    new(BasicRecord),
		Chain: &ChainRecord{
			ChainCollect:    make([]int, ChainLen),
			MaxChainCollect: make([]int, ChainLen),
		},
		Dist: &DistRecord{
			Bucket:       stats.Buckets,
			ScoreCollect: make([]int, stats.Buckets.Len()),
		},
		scores: make([]float64, 0, 1024),
	}
}

// MergeGameRecorder 合併多個 worker 的紀錄；順序會保留在每局分數中
func MergeGameRecorder(r []*GameRecorder) (*GameRecorder, error) {
	if len(r) == 0 {
		return nil, errs.NewFatal("merge game record err : empty input")
	}
	r0 := r[0]
	s := NewGameRecorder(r0.GameName, r0.GameId)
	for _, v := range r {
		if v.GameName != r0.GameName || v.GameId != r0.GameId {
			return s, errs.NewFatal("merge game record err : different game")
		}
		b := v.Basic
		s.Basic.Games += b.Games
		s.Basic.Turns += b.Turns
		s.Basic.TotalScore += b.TotalScore
		s.Basic.TotalFrames += b.TotalFrames
		s.Basic.Fires += b.Fires
		s.Basic.AllClears += b.AllClears
		s.Basic.GameOvers += b.GameOvers
		s.Basic.SumMaxChain += b.SumMaxChain
		s.Basic.MaxChain = max(s.Basic.MaxChain, b.MaxChain)

		for i := range ChainLen {
			s.Chain.ChainCollect[i] += v.Chain.ChainCollect[i]
			s.Chain.MaxChainCollect[i] += v.Chain.MaxChainCollect[i]
		}
		for i := range v.Dist.ScoreCollect {
			s.Dist.ScoreCollect[i] += v.Dist.ScoreCollect[i]
		}
		s.scores = append(s.scores, v.scores...)
	}
	return s, nil
}

// Record 以一局的 GameResult 更新統計
func (s *GameRecorder) Record(gr *buf.GameResult) {
	b := s.Basic
	b.Games++
	b.Turns += gr.Turns
	b.TotalScore += gr.Score
	b.TotalFrames += gr.Frames
	b.Fires += gr.Fires
	b.AllClears += gr.AllClears
	if gr.GameOver {
		b.GameOvers++
	}
	b.SumMaxChain += gr.MaxChain
	b.MaxChain = max(b.MaxChain, gr.MaxChain)

	for i, c := range gr.ChainCollect {
		s.Chain.ChainCollect[i] += c
	}
	s.Chain.MaxChainCollect[min(gr.MaxChain, ChainLen-1)]++
	s.Dist.ScoreCollect[s.Dist.Bucket.Index(gr.Score)]++
	s.scores = append(s.scores, float64(gr.Score))
}

// Games 已紀錄的局數
func (s *GameRecorder) Games() int {
	return s.Basic.Games
}

// Done 輸出報表 (報表持有自己的資料副本)
func (s *GameRecorder) Done() *stats.Report {
	rep := stats.NewReport(s.GameName, s.GameId, ChainLen)
	b := s.Basic
	sum := rep.Summary
	sum.Games = b.Games
	sum.Turns = b.Turns
	sum.TotalScore = b.TotalScore
	sum.TotalFrames = b.TotalFrames
	sum.Fires = b.Fires
	sum.AllClears = b.AllClears
	sum.GameOvers = b.GameOvers
	sum.MaxChain = b.MaxChain
	sum.SumMaxChain = b.SumMaxChain

	copy(rep.Chain.ChainCollect, s.Chain.ChainCollect)
	copy(rep.Chain.MaxChainCollect, s.Chain.MaxChainCollect)
	copy(rep.Dist.ScoreCollect, s.Dist.ScoreCollect)
	rep.Scores = append([]float64(nil), s.scores...)
	rep.Done()
	return rep
}

// Reset 清空紀錄，保留容量
func (s *GameRecorder) Reset() {
	*s.Basic = BasicRecord{}
	clear(s.Chain.ChainCollect)
	clear(s.Chain.MaxChainCollect)
	clear(s.Dist.ScoreCollect)
	s.scores = s.scores[:0]
}
