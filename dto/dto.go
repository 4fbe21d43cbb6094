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

// Package dto HTTP 請求與回應的序列化結構。
//
// 這裡只負責解碼、基本型別轉換與格式輸出；遊戲是否存在等合法性由 Runtime/Lab 決定。
package dto

import (
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

// SimulateResult 連鎖模擬的輸出
type SimulateResult struct {
	Result   field.Result     `json:"result"`
	Field    string           `json:"field"` // 連鎖結束後的盤面
	AllClear bool             `json:"all_clear"`
	Track    []string         `json:"track,omitempty"` // 每格在第幾連鎖消除
	Steps    []field.StepStat `json:"steps,omitempty"`
}

// Simulate 依請求執行模擬 (盤面是值複製，不影響呼叫端)
func Simulate(f field.Field, r *field.Rules, track, steps bool) SimulateResult {
	var (
		tr  field.TrackResult
		cr  field.CoefResult
		res field.Result
	)
	switch {
	case track && steps:
		res = r.SimulateDetail(&f, &tr, &cr)
	case track:
		res = r.SimulateTrack(&f, &tr)
	case steps:
		res = r.SimulateCoef(&f, &cr)
	default:
		res = r.Simulate(&f)
	}
	out := SimulateResult{
		Result:   res,
		Field:    f.String(),
		AllClear: res.Chains > 0 && f.IsAllClear(),
	}
	if track {
		out.Track = tr.Rows()
	}
	if steps {
		out.Steps = append([]field.StepStat(nil), cr.Used()...)
	}
	return out
}

// PlaceResult 放下一組後的輸出
type PlaceResult struct {
	Result   field.Result `json:"result"`
	Field    string       `json:"field"`
	AxisY    int          `json:"axis_y"`
	ChildY   int          `json:"child_y"`
	Split    bool         `json:"split"`  // 軸與子落在高度不同的兩列
	Frames   int          `json:"frames"` // 從出現到落定
	AllClear bool         `json:"all_clear"`
	Dead     bool         `json:"dead"`
}

// Place 放下並模擬；放不下時回傳 Warn
func Place(p *Placement) (PlaceResult, error) {
	f := p.Field
	ay, cy := f.DropPosition(p.Decision)
	split := f.IsSplitDecision(p.Decision)
	frames := p.Rules.FramesToDropNext(&f, p.Decision)
	if !f.DropPair(p.Decision, p.Pair) {
		return PlaceResult{}, errs.Warnf("pair %s can not be placed at %s", p.Pair, p.Decision)
	}
	res := p.Rules.SimulateAfter(&f, p.Decision)
	return PlaceResult{
		Result:   res,
		Field:    f.String(),
		AxisY:    ay,
		ChildY:   cy,
		Split:    split,
		Frames:   frames,
		AllClear: res.Chains > 0 && f.IsAllClear(),
		Dead:     f.IsDead(),
	}, nil
}

// TurnDTO 一手的結果
type TurnDTO struct {
	Turn     int    `json:"turn"`
	Pair     string `json:"pair"`
	X        int    `json:"x"`
	R        int    `json:"r"`
	Chains   int    `json:"chains"`
	Score    int    `json:"score"`
	Frames   int    `json:"frames"`
	AllClear bool   `json:"all_clear,omitempty"`
}

// PlayResult 對局結果與結束後的快照 (帶回 snapshot 即可續玩)
type PlayResult struct {
	GameName     string    `json:"game"`
	GameID       spec.GID  `json:"gid"`
	Turns        int       `json:"turns"`
	Score        int       `json:"score"`
	Frames       int       `json:"frames"`
	MaxChain     int       `json:"max_chain"`
	Fires        int       `json:"fires"`
	AllClears    int       `json:"all_clears"`
	GameOver     bool      `json:"game_over"`
	ChainCollect []int     `json:"chain_collect"` // [n] 連鎖數為 n 的手數，去掉尾端的 0
	Log          []TurnDTO `json:"log,omitempty"`
	Snapshot     string    `json:"snapshot"`
}

func NewPlayResult(gr *buf.GameResult, snapshot string) (PlayResult, error) {
	if gr == nil {
		return PlayResult{}, errs.NewWarn("game result is nil")
	}
	n := len(gr.ChainCollect)
	for n > 1 && gr.ChainCollect[n-1] == 0 {
		n--
	}
	out := PlayResult{
		GameName:     gr.GameName,
		GameID:       gr.GameID,
		Turns:        gr.Turns,
		Score:        gr.Score,
		Frames:       gr.Frames,
		MaxChain:     gr.MaxChain,
		Fires:        gr.Fires,
		AllClears:    gr.AllClears,
		GameOver:     gr.GameOver,
		ChainCollect: append([]int(nil), gr.ChainCollect[:n]...),
		Snapshot:     snapshot,
	}
	if len(gr.Log) > 0 {
		out.Log = make([]TurnDTO, len(gr.Log))
		for i, t := range gr.Log {
			out.Log[i] = TurnDTO{
				Turn:     t.Turn,
				Pair:     t.Pair.String(),
				X:        t.Decision.X,
				R:        t.Decision.R,
				Chains:   t.Result.Chains,
				Score:    t.Result.Score,
				Frames:   t.Result.Frames,
				AllClear: t.AllClear,
			}
		}
	}
	return out, nil
}
