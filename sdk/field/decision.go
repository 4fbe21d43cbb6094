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

// Pair 一組落下單位：軸 (Axis) 與子 (Child)
type Pair struct {
	Axis  Color `json:"axis"`
	Child Color `json:"child"`
}

// IsRep 兩格同色 (對稱的放法會產生重複的結果)
func (p Pair) IsRep() bool { return p.Axis == p.Child }

func (p Pair) String() string {
	return string([]byte{p.Axis.Char(), p.Child.Char()})
}

// Decision 放置位置：軸所在列 X 與旋轉 R。
//
//	R = 0 子在軸上方
//	R = 1 子在軸右側
//	R = 2 子在軸下方
//	R = 3 子在軸左側
type Decision struct {
	X int `json:"x"`
	R int `json:"r"`
}

var childDX = [4]int{0, 1, 0, -1}

// AxisX 軸所在列
func (d Decision) AxisX() int { return d.X }

// ChildX 子所在列
func (d Decision) ChildX() int { return d.X + childDX[d.R&3] }

// IsValid 軸與子都在 1..6 列內且旋轉合法
func (d Decision) IsValid() bool {
	if d.X < 1 || d.X > Width || d.R < 0 || d.R > 3 {
		return false
	}
	cx := d.ChildX()
	return cx >= 1 && cx <= Width
}

// IsVertical 軸與子落在同一列
func (d Decision) IsVertical() bool { return d.R == 0 || d.R == 2 }

func (d Decision) String() string {
	return fmt.Sprintf("%d-%d", d.X, d.R)
}

// AllDecisions 所有 22 種合法的放置位置
var AllDecisions = func() []Decision {
	ds := make([]Decision, 0, 22)
	for x := 1; x <= Width; x++ {
		for r := 0; r < 4; r++ {
			d := Decision{X: x, R: r}
			if d.IsValid() {
				ds = append(ds, d)
			}
		}
	}
	return ds
}()

// Mirror 兩格同色時與 d 結果相同的另一種放法；沒有對應時回傳 d 本身
func (d Decision) Mirror() Decision {
	switch d.R {
	case 0:
		return Decision{X: d.X, R: 2}
	case 2:
		return Decision{X: d.X, R: 0}
	case 1:
		return Decision{X: d.X + 1, R: 3}
	case 3:
		return Decision{X: d.X - 1, R: 1}
	}
	return d
}
