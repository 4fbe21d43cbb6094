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

// SpawnRow 新的一組出現時軸所在的列
const SpawnRow = VisibleHeight

// DeathX, DeathY 出現位置；落定後這一格被佔住就結束
const (
	DeathX = 3
	DeathY = VisibleHeight
)

// IsDead 出現位置被佔住
func (f *Field) IsDead() bool {
	return f.cells[DeathX][DeathY] != Empty
}

// DropPair 以 d 放下 p。放不下時回傳 false，盤面完全不變。
// R = 2 時子在下方，先放子再放軸；其餘先放軸。
func (f *Field) DropPair(d Decision, p Pair) bool {
	if Debug && !d.IsValid() {
		panic("field: invalid decision")
	}
	firstX, firstC := d.AxisX(), p.Axis
	secondX, secondC := d.ChildX(), p.Child
	if d.R == 2 {
		firstC, secondC = secondC, firstC
	}
	if !f.DropOn(firstX, firstC) {
		return false
	}
	if !f.DropOn(secondX, secondC) {
		f.RemoveTop(firstX)
		return false
	}
	return true
}

// UndoPair 撤銷最近一次以 d 成功的 DropPair。
// 後放的那格先移除；兩格在同一列時就是移除兩次。
func (f *Field) UndoPair(d Decision) {
	f.RemoveTop(d.ChildX())
	f.RemoveTop(d.AxisX())
}

// DropPosition 以 d 放下時軸與子會停在的列 (不修改盤面)
func (f *Field) DropPosition(d Decision) (axisY, childY int) {
	ax, cx := d.AxisX(), d.ChildX()
	switch d.R {
	case 0:
		axisY = int(f.heights[ax]) + 1
		childY = axisY + 1
	case 2:
		childY = int(f.heights[ax]) + 1
		axisY = childY + 1
	default:
		axisY = int(f.heights[ax]) + 1
		childY = int(f.heights[cx]) + 1
	}
	return axisY, childY
}

// IsSplitDecision 軸與子落在高度不同的兩列 (其中一格會單獨多落一段)
func (f *Field) IsSplitDecision(d Decision) bool {
	if d.IsVertical() {
		return false
	}
	return f.heights[d.AxisX()] != f.heights[d.ChildX()]
}

// FramesToDropNext 以 d 放下 (不修改盤面) 從出現到落定需要的 frame 數。
// 先以整組落到較高的一格，分離時較低的一格再單獨落下。
func (f *Field) FramesToDropNext(d Decision) int {
	return DefaultRules.FramesToDropNext(f, d)
}

// FramesToDropNext 同 Field.FramesToDropNext，使用這組規則的時間設定
func (r *Rules) FramesToDropNext(f *Field, d Decision) int {
	axisY, childY := f.DropPosition(d)
	low, high := min(axisY, childY), max(axisY, childY)

	fall := SpawnRow - high
	if d.IsVertical() {
		fall = SpawnRow - low
	}
	frames := r.DropFramesPerRow*max(fall, 0) + r.LandingDelay
	if !d.IsVertical() && high != low {
		frames += r.DropFramesPerRow*(high-low) + r.LandingDelay
	}
	return frames
}
