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

import "fmt"

// MaxChains CoefResult 記錄的最大連鎖數 (盤面容量 / 門檻 = 18，留餘裕)
const MaxChains = 20

// Result 一次連鎖模擬的結果
type Result struct {
	Chains int  `json:"chains"`
	Score  int  `json:"score"`
	Frames int  `json:"frames"`
	Quick  bool `json:"quick"` // 最後一次消除後沒有任何格子落下
}

func (r Result) String() string {
	return fmt.Sprintf("chains=%d score=%d frames=%d quick=%t", r.Chains, r.Score, r.Frames, r.Quick)
}

// StepStat 單一連鎖步驟的統計
type StepStat struct {
	Chain         int                  `json:"chain"`
	Erased        int                  `json:"erased"` // 一般顏色消除數 (不含中性格)
	Ojama         int                  `json:"ojama"`  // 連帶消除的中性格
	Colors        int                  `json:"colors"`
	Groups        int                  `json:"groups"`
	LongBonus     int                  `json:"long_bonus"`
	ErasedByColor [NumNormalColors]int `json:"erased_by_color"`
	GroupsByColor [NumNormalColors]int `json:"groups_by_color"`
	Score         int                  `json:"score"`
	MaxDrop       int                  `json:"max_drop"`
	Frames        int                  `json:"frames"`
}

// TrackResult 每一格被第幾連鎖消除 (0 = 未消除)。
// 座標是模擬開始時的位置，不是落下後的位置。
type TrackResult struct {
	erasedAt [MapWidth][MapHeight]uint8
}

// ErasedAt (x, y) 在第幾連鎖被消除
func (t *TrackResult) ErasedAt(x, y int) int {
	return int(t.erasedAt[x][y])
}

// Reset 清空
func (t *TrackResult) Reset() {
	t.erasedAt = [MapWidth][MapHeight]uint8{}
}

// Rows 以文字列 (上到下，每列 6 格) 表示，'.' 為未消除，其餘為連鎖數 (超過 9 以字母表示)
func (t *TrackResult) Rows() []string {
	top := 0
	for x := 1; x <= Width; x++ {
		for y := Height; y > top; y-- {
			if t.erasedAt[x][y] != 0 {
				top = y
				break
			}
		}
	}
	rows := make([]string, 0, top)
	for y := top; y >= 1; y-- {
		var b [Width]byte
		for x := 1; x <= Width; x++ {
			b[x-1] = chainDigit(int(t.erasedAt[x][y]))
		}
		rows = append(rows, string(b[:]))
	}
	return rows
}

func chainDigit(n int) byte {
	switch {
	case n == 0:
		return '.'
	case n < 10:
		return byte('0' + n)
	default:
		return byte('A' + n - 10)
	}
}

// CoefResult 每一步的統計，供外部特徵抽取使用
type CoefResult struct {
	Chains int
	Steps  [MaxChains]StepStat
}

// Step 第 n 連鎖 (從 1 開始) 的統計
func (c *CoefResult) Step(n int) StepStat {
	if n < 1 || n > MaxChains {
		return StepStat{}
	}
	return c.Steps[n-1]
}

// Used 已記錄的步驟
func (c *CoefResult) Used() []StepStat {
	n := c.Chains
	if n > MaxChains {
		n = MaxChains
	}
	return c.Steps[:n]
}

// Reset 清空
func (c *CoefResult) Reset() {
	*c = CoefResult{}
}
