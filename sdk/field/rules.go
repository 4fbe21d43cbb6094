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

// Rules 計分表與時間 (frame) 設定。
//
// 三張表都是「超出範圍就取最後一格」：
//   - ChainBonus[n-1] 為第 n 連鎖的連鎖倍率
//   - ColorBonus[k] 為同一步消除 k 種顏色的加成
//   - LongBonus[s] 為單一群組 s 格的加成 (同一步多個群組相加)
//
// 通常由 spec.RuleSetting 從設定檔建立；DefaultRules 為內建值。
type Rules struct {
	ChainBonus []int
	ColorBonus []int
	LongBonus  []int

	VanishDelay      int // 每一步消除的固定延遲
	DropFramesPerRow int // 落下每一列的 frame 數
	LandingDelay     int // 有格子落下時的著地延遲
}

const (
	minStepBonus = 1
	maxStepBonus = 999
	scoreUnit    = 10
)

// TsuRules 回傳內建的計分表
func TsuRules() Rules {
	return Rules{
		ChainBonus: []int{0, 8, 16, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 480, 512},
		ColorBonus: []int{0, 0, 3, 6, 12, 24},
		LongBonus:  []int{0, 0, 0, 0, 0, 2, 3, 4, 5, 6, 7, 10},

		VanishDelay:      50,
		DropFramesPerRow: 2,
		LandingDelay:     10,
	}
}

// DefaultRules Field.Simulate 等便利方法使用的規則
var DefaultRules = TsuRules()

func lookup(table []int, i int) int {
	if len(table) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(table) {
		i = len(table) - 1
	}
	return table[i]
}

// ChainBonusOf 第 n 連鎖的倍率 (n 從 1 開始)
func (r *Rules) ChainBonusOf(n int) int { return lookup(r.ChainBonus, n-1) }

// ColorBonusOf 同時消除 k 種顏色的加成
func (r *Rules) ColorBonusOf(k int) int { return lookup(r.ColorBonus, k) }

// LongBonusOf 單一群組 size 格的加成
func (r *Rules) LongBonusOf(size int) int { return lookup(r.LongBonus, size) }

// StepScore 一步消除的得分：
// scoreUnit * erased * clamp(chain + long + color, 1, 999)
func (r *Rules) StepScore(nthChain, erased, colors, longBonus int) int {
	bonus := r.ChainBonusOf(nthChain) + longBonus + r.ColorBonusOf(colors)
	if bonus < minStepBonus {
		bonus = minStepBonus
	}
	if bonus > maxStepBonus {
		bonus = maxStepBonus
	}
	return scoreUnit * erased * bonus
}

// StepFrames 一步消除的耗時；maxDrop 為 0 代表沒有任何格子落下
func (r *Rules) StepFrames(maxDrop int) int {
	frames := r.VanishDelay
	if maxDrop > 0 {
		frames += r.DropFramesPerRow*maxDrop + r.LandingDelay
	}
	return frames
}
