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

// simulate 連鎖迴圈：重複「消除檢查 -> 落定」直到某一步沒有消除。
// 每一步至少清掉 4 格，盤面有限，因此一定終止。
// 第一步以 first 連鎖計分，Result.Chains 為最後一個有消除的步驟的連鎖數 (沒有消除為 0)。
func simulate[T Tracker](f *Field, r *Rules, first int, mh MinHeights, tr T) Result {
	var res Result
	for nth := max(first, 1); ; nth++ {
		var st StepStat
		if !vanishStep(f, r, nth, &mh, tr, &st) {
			break
		}
		res.Chains = nth
		res.Score += st.Score
		res.Frames += st.Frames
		res.Quick = st.MaxDrop == 0
	}
	return res
}

// Simulate 以這組規則模擬 f 上的連鎖，f 會被改成落定後的盤面
func (r *Rules) Simulate(f *Field) Result {
	return simulate(f, r, 1, FullScan(), NopTracker{})
}

// SimulateFrom 同 Simulate，第一步視為第 initialChain 連鎖 (例如接續進行中的連鎖)
func (r *Rules) SimulateFrom(f *Field, initialChain int) Result {
	return simulate(f, r, initialChain, FullScan(), NopTracker{})
}

// SimulateTrack 同 Simulate，並記錄每一格被第幾連鎖消除
func (r *Rules) SimulateTrack(f *Field, tr *TrackResult) Result {
	return simulate(f, r, 1, FullScan(), NewChainTracker(tr))
}

// SimulateCoef 同 Simulate，並記錄每一步的統計
func (r *Rules) SimulateCoef(f *Field, cr *CoefResult) Result {
	return simulate(f, r, 1, FullScan(), NewCoefTracker(cr))
}

// SimulateDetail 同時記錄 TrackResult 與 CoefResult
func (r *Rules) SimulateDetail(f *Field, tr *TrackResult, cr *CoefResult) Result {
	return simulate(f, r, 1, FullScan(), Tee(NewChainTracker(tr), NewCoefTracker(cr)))
}

// SimulateWithTracker 使用自訂觀察者
func (r *Rules) SimulateWithTracker(f *Field, t Tracker) Result {
	return simulate(f, r, 1, FullScan(), t)
}

// SimulateWithMinHeights 只從 mh 指定的範圍開始第一次消除檢查。
// mh 必須涵蓋自上次落定以來所有變動過的格子，否則可能漏掉消除。
func (r *Rules) SimulateWithMinHeights(f *Field, mh MinHeights) Result {
	return simulate(f, r, 1, mh, NopTracker{})
}

// SimulateAfter 在剛以 d 放下一組之後模擬，只檢查被放下的兩格所在的範圍
func (r *Rules) SimulateAfter(f *Field, d Decision) Result {
	return simulate(f, r, 1, f.minHeightsAfter(d), NopTracker{})
}

// ChainWillOccurAfter 以 d 放下一組之後是否會發生消除 (不修改盤面)
func (f *Field) ChainWillOccurAfter(d Decision) bool {
	return f.ChainWillOccurWithMinHeights(f.minHeightsAfter(d))
}

// minHeightsAfter 剛放下的兩格中各列最低的那一格
func (f *Field) minHeightsAfter(d Decision) MinHeights {
	var mh MinHeights
	for x := 1; x <= Width; x++ {
		mh[x] = untouched
	}
	ax, cx := d.AxisX(), d.ChildX()
	if ax == cx {
		mh[ax] = max(int(f.heights[ax])-1, 1)
	} else {
		mh[ax] = max(int(f.heights[ax]), 1)
		mh[cx] = max(int(f.heights[cx]), 1)
	}
	return mh
}

// ChainWillOccurWithMinHeights 從 mh 範圍出發是否存在達門檻的群組 (不修改盤面)
func (f *Field) ChainWillOccurWithMinHeights(mh MinHeights) bool {
	var checked BitField
	for x := 1; x <= Width; x++ {
		maxY := min(int(f.heights[x]), VisibleHeight)
		for y := mh[x]; y <= maxY; y++ {
			if f.CountConnectedChecked(x, y, &checked) >= VanishThreshold {
				return true
			}
		}
	}
	return false
}

// Simulate 使用 DefaultRules
func (f *Field) Simulate() Result { return DefaultRules.Simulate(f) }

// SimulateFrom 使用 DefaultRules
func (f *Field) SimulateFrom(initialChain int) Result { return DefaultRules.SimulateFrom(f, initialChain) }

// SimulateTrack 使用 DefaultRules
func (f *Field) SimulateTrack(tr *TrackResult) Result { return DefaultRules.SimulateTrack(f, tr) }

// SimulateCoef 使用 DefaultRules
func (f *Field) SimulateCoef(cr *CoefResult) Result { return DefaultRules.SimulateCoef(f, cr) }

// SimulateAfter 使用 DefaultRules
func (f *Field) SimulateAfter(d Decision) Result { return DefaultRules.SimulateAfter(f, d) }

// SimulateWithMinHeights 使用 DefaultRules
func (f *Field) SimulateWithMinHeights(mh MinHeights) Result {
	return DefaultRules.SimulateWithMinHeights(f, mh)
}
