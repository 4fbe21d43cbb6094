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

// MinHeights 每列「自上次落定後最低的變動列」。
// 消除檢查只從這些列以上的格子出發；值 > 該列高度代表整列未變動，直接跳過。
// 只使用索引 1..6。
type MinHeights [MapWidth]int

// FullScan 所有列都從第 1 列開始檢查
func FullScan() MinHeights {
	var mh MinHeights
	for x := 1; x <= Width; x++ {
		mh[x] = 1
	}
	return mh
}

// untouched 表示該列沒有變動
const untouched = MapHeight

// vanishStep 執行一個步驟：找出所有達門檻的群組、消除 (含相鄰中性格)、計分、落下。
// 沒有任何消除時回傳 false 且盤面不變。
// 回傳 true 時 mh 已更新為下一步要檢查的範圍，st 填好本步統計。
func vanishStep[T Tracker](f *Field, r *Rules, nthChain int, mh *MinHeights, tr T, st *StepStat) bool {
	var checked BitField
	var q PositionQueue

	if !f.collectVanishing(mh, &checked, &q, r, st) {
		return false
	}

	tr.StepStarted(nthChain)
	eraseQueued(f, nthChain, &q, mh, tr, st)
	maxDrop := dropAfterVanish(f, mh, tr)

	for i := 0; i < NumNormalColors; i++ {
		if st.ErasedByColor[i] > 0 {
			st.Colors++
		}
	}
	st.Chain = nthChain
	st.Score = r.StepScore(nthChain, st.Erased, st.Colors, st.LongBonus)
	st.MaxDrop = maxDrop
	st.Frames = r.StepFrames(maxDrop)

	tr.StepCompleted(*st)
	return true
}

// collectVanishing 掃描受影響範圍，把所有達門檻群組寫進 q
func (f *Field) collectVanishing(mh *MinHeights, checked *BitField, q *PositionQueue, r *Rules, st *StepStat) bool {
	for x := 1; x <= Width; x++ {
		maxY := int(f.heights[x])
		if maxY > VisibleHeight {
			maxY = VisibleHeight
		}
		for y := mh[x]; y <= maxY; y++ {
			c := f.cells[x][y]
			if !c.IsNormal() || checked.Get(x, y) {
				continue
			}
			start := q.Len()
			n := f.FillSameColor(x, y, c, q, checked)
			if n < VanishThreshold {
				q.Truncate(start)
				continue
			}
			idx := c.index()
			st.ErasedByColor[idx] += n
			st.GroupsByColor[idx]++
			st.Groups++
			st.LongBonus += r.LongBonusOf(n)
		}
	}
	st.Erased = q.Len()
	return q.Len() > 0
}

// eraseQueued 清空 q 中的格子與其相鄰的中性格，並把 mh 改寫為各列最低的清空列
func eraseQueued[T Tracker](f *Field, nthChain int, q *PositionQueue, mh *MinHeights, tr T, st *StepStat) {
	for x := 1; x <= Width; x++ {
		mh[x] = untouched
	}

	for _, p := range q.Slice() {
		eraseCell(f, int(p.X), int(p.Y), nthChain, mh, tr)
	}
	for _, p := range q.Slice() {
		x, y := int(p.X), int(p.Y)
		if f.cells[x-1][y] == Ojama {
			eraseCell(f, x-1, y, nthChain, mh, tr)
			st.Ojama++
		}
		if f.cells[x+1][y] == Ojama {
			eraseCell(f, x+1, y, nthChain, mh, tr)
			st.Ojama++
		}
		if f.cells[x][y-1] == Ojama {
			eraseCell(f, x, y-1, nthChain, mh, tr)
			st.Ojama++
		}
		if y+1 <= VisibleHeight && f.cells[x][y+1] == Ojama {
			eraseCell(f, x, y+1, nthChain, mh, tr)
			st.Ojama++
		}
	}
}

func eraseCell[T Tracker](f *Field, x, y, nthChain int, mh *MinHeights, tr T) {
	tr.CellVanished(x, y, f.cells[x][y], nthChain)
	f.cells[x][y] = Empty
	if y < mh[x] {
		mh[x] = y
	}
}

// dropAfterVanish 壓縮有變動的列 (保持相對順序)，重算高度，回傳最大落下距離
func dropAfterVanish[T Tracker](f *Field, mh *MinHeights, tr T) int {
	maxDrop := 0
	for x := 1; x <= Width; x++ {
		from := mh[x]
		if from == untouched {
			continue
		}
		h := int(f.heights[x])
		wp := from
		for y := from; y <= h; y++ {
			c := f.cells[x][y]
			if c == Empty {
				continue
			}
			if y != wp {
				f.cells[x][wp] = c
				f.cells[x][y] = Empty
				tr.CellDropped(x, y, wp)
				if d := y - wp; d > maxDrop {
					maxDrop = d
				}
			}
			wp++
		}
		f.heights[x] = uint8(wp - 1)
	}
	return maxDrop
}

// VanishOnly 只做一次消除 (不落下)，回傳分數；沒有消除時回傳 0。
// 消除後盤面可能懸空，呼叫端需自行 ForceDrop。
func (f *Field) VanishOnly(r *Rules, nthChain int) int {
	var checked BitField
	var q PositionQueue
	var st StepStat
	mh := FullScan()

	if !f.collectVanishing(&mh, &checked, &q, r, &st) {
		return 0
	}
	eraseQueued(f, nthChain, &q, &mh, NopTracker{}, &st)
	for i := 0; i < NumNormalColors; i++ {
		if st.ErasedByColor[i] > 0 {
			st.Colors++
		}
	}
	return r.StepScore(nthChain, st.Erased, st.Colors, st.LongBonus)
}
