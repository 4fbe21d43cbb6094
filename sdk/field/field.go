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

// Field 在 Grid 之上加一層每列高度快取。
//
// 值語意：整個 Field 只有固定大小的陣列，直接賦值就是完整快照。
// 搜尋分支可以選擇「複製一份」或「同一份上 DropPair / UndoPair」。
//
// 不變式：每一列 1..Height(x) 全部非空、之上全部為空。
// 只有 SetColor 之後、RecalcHeightOn 之前會暫時不成立。
type Field struct {
	Grid
	heights [MapWidth]uint8
}

// New 建立空盤面
func New() Field {
	return Field{Grid: NewGrid()}
}

// FromGrid 以既有 Grid 建立 Field 並重算所有高度
func FromGrid(g Grid) Field {
	f := Field{Grid: g}
	f.initWalls()
	f.RecalcHeights()
	return f
}

// Clear 清空盤面
func (f *Field) Clear() {
	*f = New()
}

// Height 回傳第 x 列最上方非空格的列號，空列為 0
func (f *Field) Height(x int) int {
	return int(f.heights[x])
}

// Heights 回傳 1..6 列的高度副本
func (f *Field) Heights() [Width]int {
	var hs [Width]int
	for x := 1; x <= Width; x++ {
		hs[x-1] = int(f.heights[x])
	}
	return hs
}

// RecalcHeightOn 由上往下掃描第 x 列，找到第一個非空格作為高度。
// 任何可能讓快取失效的操作 (SetColor、手動建盤) 之後都要呼叫。
func (f *Field) RecalcHeightOn(x int) {
	f.heights[x] = 0
	for y := Height; y >= 1; y-- {
		if f.cells[x][y] != Empty {
			f.heights[x] = uint8(y)
			return
		}
	}
}

// RecalcHeights 重算所有列
func (f *Field) RecalcHeights() {
	for x := 1; x <= Width; x++ {
		f.RecalcHeightOn(x)
	}
}

// SetColorAndRecalc 寫入格子並修正該列高度，給測試與手動建盤使用。
func (f *Field) SetColorAndRecalc(x, y int, c Color) {
	f.SetColor(x, y, c)
	f.RecalcHeightOn(x)
}

// DropOn 把 c 疊到第 x 列最上方。
// 該列已滿時回傳 false，且盤面不變。
func (f *Field) DropOn(x int, c Color) bool {
	if Debug {
		mustPlayable(x, 1)
	}
	h := f.heights[x]
	if h >= Height {
		return false
	}
	h++
	f.cells[x][h] = c
	f.heights[x] = h
	return true
}

// RemoveTop 移除第 x 列最上方的格子；空列則不做事。
func (f *Field) RemoveTop(x int) {
	h := f.heights[x]
	if h == 0 {
		return
	}
	f.cells[x][h] = Empty
	f.heights[x] = h - 1
}

// ForceDrop 讓所有懸空的格子落下，並重算高度。
// 用於文字建盤或 SetColor 之後留下空洞的盤面。
func (f *Field) ForceDrop() {
	for x := 1; x <= Width; x++ {
		wp := 1
		for y := 1; y <= Height; y++ {
			c := f.cells[x][y]
			if c == Empty {
				continue
			}
			if wp != y {
				f.cells[x][wp] = c
				f.cells[x][y] = Empty
			}
			wp++
		}
		f.heights[x] = uint8(wp - 1)
	}
}

// IsAllClear 盤面上沒有任何格子。只在所有格子都已落定時有效。
func (f *Field) IsAllClear() bool {
	for x := 1; x <= Width; x++ {
		if f.heights[x] != 0 {
			return false
		}
	}
	return true
}

// IsAllClearPrecise 逐格確認，格子懸空時也正確。
func (f *Field) IsAllClearPrecise() bool {
	for x := 1; x <= Width; x++ {
		for y := 1; y <= Height; y++ {
			if f.cells[x][y] != Empty {
				return false
			}
		}
	}
	return true
}

// CountColorCells 一般顏色格數
func (f *Field) CountColorCells() int {
	n := 0
	for x := 1; x <= Width; x++ {
		for y := 1; y <= int(f.heights[x]); y++ {
			if f.cells[x][y].IsNormal() {
				n++
			}
		}
	}
	return n
}

// CountCells 所有格數 (含中性格)
func (f *Field) CountCells() int {
	n := 0
	for x := 1; x <= Width; x++ {
		for y := 1; y <= Height; y++ {
			if f.cells[x][y] != Empty {
				n++
			}
		}
	}
	return n
}

// Equal 兩個盤面每一格都相同時為 true。高度快取是衍生資料，不參與比較。
func (f *Field) Equal(o *Field) bool {
	return f.Grid == o.Grid
}

// isSettled 每列都符合高度不變式 (測試與除錯用)
func (f *Field) isSettled() bool {
	for x := 1; x <= Width; x++ {
		h := int(f.heights[x])
		for y := 1; y <= Height; y++ {
			if (y <= h) != (f.cells[x][y] != Empty) {
				return false
			}
		}
	}
	return true
}
