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

// Package buf 對局結果的可重用緩衝。
//
// 模擬器每局都會重用同一份 GameResult (Reset 保留已配置的容量)，
// 需要在下一局之後保留內容時請先 Clone 或轉成 DTO。
package buf

import (
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

const capTurnGrow = 128

// TurnResult 單一手的結果
type TurnResult struct {
	Turn     int            `json:"turn"`
	Pair     field.Pair     `json:"-"`
	Decision field.Decision `json:"decision"`
	Result   field.Result   `json:"result"`
	AllClear bool           `json:"all_clear"`
}

// GameResult 一局 (或一段對局) 的累計結果
type GameResult struct {
	GameName  string   `json:"game_name"`
	GameID    spec.GID `json:"game_id"`
	Turns     int      `json:"turns"`
	Score     int      `json:"score"`
	Frames    int      `json:"frames"`
	MaxChain  int      `json:"max_chain"`
	Fires     int      `json:"fires"` // 引發連鎖的手數
	AllClears int      `json:"all_clears"`
	GameOver  bool     `json:"game_over"`

	// ChainCollect[n] 連鎖數為 n 的手數；超過 MaxChains 的算在最後一格
	ChainCollect [field.MaxChains + 1]int `json:"-"`

	KeepLog   bool         `json:"-"`
	Log       []TurnResult `json:"log,omitempty"`
	IsGameEnd bool         `json:"-"`
}

// NewGameResult 建立指定遊戲的 GameResult
func NewGameResult(gs *spec.GameSetting, keepLog bool) *GameResult {
	g := &GameResult{
		GameName: gs.GameName,
		GameID:   gs.GameID,
		KeepLog:  keepLog,
	}
	if keepLog {
		g.Log = make([]TurnResult, 0, capTurnGrow)
	}
	return g
}

// AppendTurn 累計一手的結果
func (g *GameResult) AppendTurn(tr *TurnResult) {
	if g.IsGameEnd {
		panic("game result is already ended, but still received a turn")
	}
	g.Turns++
	g.Score += tr.Result.Score
	g.Frames += tr.Result.Frames
	c := tr.Result.Chains
	g.ChainCollect[min(c, field.MaxChains)]++
	if c > 0 {
		g.Fires++
		g.MaxChain = max(g.MaxChain, c)
	}
	if tr.AllClear {
		g.AllClears++
	}
	if g.KeepLog {
		g.Log = append(g.Log, *tr)
	}
}

// End 結束；gameOver 表示出現位置被佔住或無處可放
func (g *GameResult) End(gameOver bool) {
	g.GameOver = gameOver
	g.IsGameEnd = true
}

// Reset 清空累計資料，保留 Log 的容量
func (g *GameResult) Reset() {
	g.Turns = 0
	g.Score = 0
	g.Frames = 0
	g.MaxChain = 0
	g.Fires = 0
	g.AllClears = 0
	g.GameOver = false
	g.ChainCollect = [field.MaxChains + 1]int{}
	g.Log = g.Log[:0]
	g.IsGameEnd = false
}

// Clone 深拷貝
func (g *GameResult) Clone() *GameResult {
	c := *g
	c.Log = append([]TurnResult(nil), g.Log...)
	return &c
}
