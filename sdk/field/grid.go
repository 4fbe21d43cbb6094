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

// Package field 是連鎖模擬引擎：盤面、高度快取、連通分析、消除與落下的不動點迴圈。
//
// 座標系：
//   - x = 1..6 為可放置的列，x = 0 與 x = 7 為牆 (哨兵)。
//   - y = 0 為地板 (牆)，y = 1..12 為可見列，y = 13 為隱藏列，y = 14..15 永遠是空格。
//
// 哨兵讓鄰格檢查不需要邊界判斷；隱藏列可以放格子但不參與消除。
//
// 熱路徑上的所有緩衝 (BitField / PositionQueue / 結果結構) 都是固定大小的陣列，
// 以值的方式放在堆疊上，模擬過程不做任何 heap 配置。
package field

const (
	Width           = 6  // 可放置列數
	Height          = 13 // 每列可容納格數 (含隱藏列)
	VisibleHeight   = 12 // 參與消除的列數
	MapWidth        = Width + 2
	MapHeight       = 16
	VanishThreshold = 4 // 同色連通數達此值即消除
)

// Debug 為 true 時，座標與旋轉等呼叫端合約會以 panic 檢查。
// 正式版保持 false，讓熱路徑沒有多餘分支。
const Debug = false

// Grid 純粹的格子資料 (不含高度快取)。
//
// 以列優先 (column-major) 儲存，單一列在記憶體上連續，落下壓縮時的存取比較友善。
type Grid struct {
	cells [MapWidth][MapHeight]Color
}

// NewGrid 建立只有外框哨兵的空盤面
func NewGrid() Grid {
	var g Grid
	g.initWalls()
	return g
}

func (g *Grid) initWalls() {
	for y := 0; y < MapHeight; y++ {
		g.cells[0][y] = Wall
		g.cells[MapWidth-1][y] = Wall
	}
	for x := 0; x < MapWidth; x++ {
		g.cells[x][0] = Wall
	}
}

// Color 讀取格子
func (g *Grid) Color(x, y int) Color {
	return g.cells[x][y]
}

// SetColor 寫入格子，不更新任何快取。
func (g *Grid) SetColor(x, y int, c Color) {
	if Debug {
		mustPlayable(x, y)
	}
	g.cells[x][y] = c
}

// IsColor 回報 (x, y) 是否為顏色 c
func (g *Grid) IsColor(x, y int, c Color) bool {
	return g.cells[x][y] == c
}

func mustPlayable(x, y int) {
	if x < 1 || x > Width || y < 1 || y >= MapHeight-1 {
		panic("field: coordinate out of range")
	}
}
