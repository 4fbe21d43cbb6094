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

// Color 格子內容。封閉集合：空格、干擾(中性)格、牆(哨兵) 與四種一般顏色。
type Color uint8

const (
	Empty Color = iota // 空格
	Ojama              // 中性格：不會組成群組，只會被相鄰的消除連帶清掉
	Wall               // 哨兵：盤面外框，永不參與 flood fill
	Red
	Blue
	Yellow
	Green
)

// NumNormalColors 一般顏色數量
const NumNormalColors = 4

// NormalColors 依序列出一般顏色
var NormalColors = [NumNormalColors]Color{Red, Blue, Yellow, Green}

// IsNormal 回報是否為可組成群組的一般顏色
func (c Color) IsNormal() bool {
	return c >= Red && c <= Green
}

// index 一般顏色在 NormalColors 中的位置 (呼叫端需保證 IsNormal)
func (c Color) index() int {
	return int(c - Red)
}

// Char 回傳文字格式中的單一字元
func (c Color) Char() byte {
	switch c {
	case Empty:
		return '.'
	case Ojama:
		return '@'
	case Wall:
		return '#'
	case Red:
		return 'R'
	case Blue:
		return 'B'
	case Yellow:
		return 'Y'
	case Green:
		return 'G'
	default:
		return '?'
	}
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Ojama:
		return "ojama"
	case Wall:
		return "wall"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// ColorFromChar 解析文字格式字元；'.' 與空白都代表空格。
func ColorFromChar(b byte) (Color, bool) {
	switch b {
	case '.', ' ':
		return Empty, true
	case '@', 'O', 'o':
		return Ojama, true
	case '#':
		return Wall, true
	case 'R', 'r':
		return Red, true
	case 'B', 'b':
		return Blue, true
	case 'Y', 'y':
		return Yellow, true
	case 'G', 'g':
		return Green, true
	default:
		return Empty, false
	}
}
