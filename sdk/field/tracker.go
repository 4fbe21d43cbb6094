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

package field

// Tracker 連鎖迴圈的觀察者。
//
// 呼叫順序 (每一個有消除的步驟)：
//
//	StepStarted -> CellVanished* -> CellDropped* -> StepCompleted
//
// 沒有消除的最後一次檢查不會觸發任何回呼。
// 模擬迴圈以泛型實作，傳入 NopTracker 時編譯器會產生不含回呼的版本。
type Tracker interface {
	StepStarted(nthChain int)
	CellVanished(x, y int, c Color, nthChain int)
	CellDropped(x, fromY, toY int)
	// StepCompleted 收到本步統計的複本
	StepCompleted(st StepStat)
}

// NopTracker 預設觀察者，不做任何事
type NopTracker struct{}

func (NopTracker) StepStarted(int)                   {}
func (NopTracker) CellVanished(int, int, Color, int) {}
func (NopTracker) CellDropped(int, int, int)         {}
func (NopTracker) StepCompleted(StepStat)            {}

// ChainTracker 記錄每一格 (以初始位置計) 被第幾連鎖消除
type ChainTracker struct {
	result *TrackResult
	origin [MapWidth][MapHeight]int8 // 目前位置 -> 初始列
}

// NewChainTracker 建立並清空 result
func NewChainTracker(result *TrackResult) *ChainTracker {
	t := &ChainTracker{result: result}
	result.Reset()
	for x := 0; x < MapWidth; x++ {
		for y := 0; y < MapHeight; y++ {
			t.origin[x][y] = int8(y)
		}
	}
	return t
}

func (t *ChainTracker) StepStarted(int) {}

func (t *ChainTracker) CellVanished(x, y int, _ Color, nthChain int) {
	t.result.erasedAt[x][t.origin[x][y]] = uint8(nthChain)
}

func (t *ChainTracker) CellDropped(x, fromY, toY int) {
	t.origin[x][toY] = t.origin[x][fromY]
}

func (t *ChainTracker) StepCompleted(StepStat) {}

// CoefTracker 把每一步的 StepStat 寫進 CoefResult
type CoefTracker struct {
	result *CoefResult
}

// NewCoefTracker 建立並清空 result
func NewCoefTracker(result *CoefResult) *CoefTracker {
	result.Reset()
	return &CoefTracker{result: result}
}

func (t *CoefTracker) StepStarted(int)                   {}
func (t *CoefTracker) CellVanished(int, int, Color, int) {}
func (t *CoefTracker) CellDropped(int, int, int)         {}

func (t *CoefTracker) StepCompleted(st StepStat) {
	t.result.Chains = st.Chain
	if st.Chain >= 1 && st.Chain <= MaxChains {
		t.result.Steps[st.Chain-1] = st
	}
}

// teeTracker 把回呼轉送給兩個觀察者
type teeTracker struct {
	a, b Tracker
}

// Tee 組合兩個觀察者
func Tee(a, b Tracker) Tracker {
	return teeTracker{a: a, b: b}
}

func (t teeTracker) StepStarted(n int) {
	t.a.StepStarted(n)
	t.b.StepStarted(n)
}

func (t teeTracker) CellVanished(x, y int, c Color, n int) {
	t.a.CellVanished(x, y, c, n)
	t.b.CellVanished(x, y, c, n)
}

func (t teeTracker) CellDropped(x, fromY, toY int) {
	t.a.CellDropped(x, fromY, toY)
	t.b.CellDropped(x, fromY, toY)
}

func (t teeTracker) StepCompleted(st StepStat) {
	t.a.StepCompleted(st)
	t.b.StepCompleted(st)
}
