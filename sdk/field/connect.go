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

// FillSameColor 從 (x, y) 開始 BFS，把所有與 c 同色且四方向相連的格子寫進 q，
// 同時在 checked 上標記。回傳本次新增的格子數。
//
// q 同時是工作佇列與輸出：讀取指標 i 追著 q.Len() 走，
// 結束時 [start, q.Len()) 即為整個群組。
// 只有可見列 (1..12) 參與；牆與中性格的顏色與 c 不同，自然不會被展開。
func (f *Field) FillSameColor(x, y int, c Color, q *PositionQueue, checked *BitField) int {
	start := q.Len()
	checked.Set(x, y)
	q.Push(x, y)

	for i := start; i < q.Len(); i++ {
		p := q.At(i)
		px, py := int(p.X), int(p.Y)

		if f.cells[px-1][py] == c && !checked.Get(px-1, py) {
			checked.Set(px-1, py)
			q.Push(px-1, py)
		}
		if f.cells[px+1][py] == c && !checked.Get(px+1, py) {
			checked.Set(px+1, py)
			q.Push(px+1, py)
		}
		if f.cells[px][py-1] == c && !checked.Get(px, py-1) {
			checked.Set(px, py-1)
			q.Push(px, py-1)
		}
		if py+1 <= VisibleHeight && f.cells[px][py+1] == c && !checked.Get(px, py+1) {
			checked.Set(px, py+1)
			q.Push(px, py+1)
		}
	}
	return q.Len() - start
}

// CountConnected 回傳與 (x, y) 相連的同色格數。
// 空格、中性格或隱藏列回傳 0。
func (f *Field) CountConnected(x, y int) int {
	var checked BitField
	return f.CountConnectedChecked(x, y, &checked)
}

// CountConnectedChecked 同 CountConnected，但沿用呼叫端的 checked；
// 已標記的起點回傳 0，可以在同一張盤面上連續查詢而不重複計算。
func (f *Field) CountConnectedChecked(x, y int, checked *BitField) int {
	c := f.cells[x][y]
	if !c.IsNormal() || y > VisibleHeight || checked.Get(x, y) {
		return 0
	}
	var q PositionQueue
	return f.FillSameColor(x, y, c, &q, checked)
}

// CountConnectedMax4 飽和計數：群組小於 4 時回傳確切大小，否則回傳 4。
// 只回答「是否達到消除門檻」，找到第 4 格就停止展開。
func (f *Field) CountConnectedMax4(x, y int) int {
	c := f.cells[x][y]
	if !c.IsNormal() || y > VisibleHeight {
		return 0
	}

	var seen [VanishThreshold]Position
	seen[0] = Position{X: int8(x), Y: int8(y)}
	n := 1

	contains := func(px, py int) bool {
		for i := 0; i < n; i++ {
			if int(seen[i].X) == px && int(seen[i].Y) == py {
				return true
			}
		}
		return false
	}

	for i := 0; i < n; i++ {
		px, py := int(seen[i].X), int(seen[i].Y)
		nbrs := [4][2]int{{px - 1, py}, {px + 1, py}, {px, py - 1}, {px, py + 1}}
		for _, nb := range nbrs {
			nx, ny := nb[0], nb[1]
			if ny > VisibleHeight || f.cells[nx][ny] != c || contains(nx, ny) {
				continue
			}
			seen[n] = Position{X: int8(nx), Y: int8(ny)}
			n++
			if n == VanishThreshold {
				return n
			}
		}
	}
	return n
}

// IsConnected (x, y) 至少有一個同色鄰格
func (f *Field) IsConnected(x, y int) bool {
	c := f.cells[x][y]
	if !c.IsNormal() || y > VisibleHeight {
		return false
	}
	if f.cells[x-1][y] == c || f.cells[x+1][y] == c || f.cells[x][y-1] == c {
		return true
	}
	return y+1 <= VisibleHeight && f.cells[x][y+1] == c
}

// HasEmptyNeighbor (x, y) 的四方向鄰格中有空格
func (f *Field) HasEmptyNeighbor(x, y int) bool {
	return f.cells[x-1][y] == Empty || f.cells[x+1][y] == Empty ||
		f.cells[x][y-1] == Empty || f.cells[x][y+1] == Empty
}
