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

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/chainlab/errs"
)

// Parse 解析文字盤面。
//
// 格式：每列 6 個字元，最上面一列在前，靠底對齊 (長度不是 6 的倍數時在前面補空格)。
// R/B/Y/G 為一般顏色 (大小寫皆可)，'@' 為中性格，'.' 或空白為空格。列與列之間可以有換行。
// 懸空的格子會原樣保留，高度取該列最上方的非空格。
func Parse(s string) (Field, error) {
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	if pad := len(s) % Width; pad != 0 {
		s = strings.Repeat(" ", Width-pad) + s
	}
	rows := len(s) / Width
	if rows > Height {
		return Field{}, errs.Warnf("field text has %d rows, max %d", rows, Height)
	}

	f := New()
	for i := 0; i < len(s); i++ {
		c, ok := ColorFromChar(s[i])
		if !ok || c == Wall {
			return Field{}, errs.Warnf("field text: invalid char %q at %d", s[i], i)
		}
		x := i%Width + 1
		y := rows - i/Width
		f.cells[x][y] = c
	}
	f.RecalcHeights()
	return f, nil
}

// MustParse 同 Parse，失敗時 panic (測試與固定盤面使用)
func MustParse(s string) Field {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// topRow 最上方有格子的列 (逐格掃描，懸空時也正確)
func (f *Field) topRow() int {
	top := 0
	for x := 1; x <= Width; x++ {
		for y := Height; y > top; y-- {
			if f.cells[x][y] != Empty {
				top = y
				break
			}
		}
	}
	return top
}

// Rows 每列 6 個字元，最上面一列在前，不含開頭的空列
func (f *Field) Rows() []string {
	top := f.topRow()
	rows := make([]string, 0, top)
	for y := top; y >= 1; y-- {
		var b [Width]byte
		for x := 1; x <= Width; x++ {
			b[x-1] = f.cells[x][y].Char()
		}
		rows = append(rows, string(b[:]))
	}
	return rows
}

// String 標準文字格式：列以換行分隔，空格為 '.'。Parse(f.String()) 與 f 相等。
func (f *Field) String() string {
	return strings.Join(f.Rows(), "\n")
}

// DebugString 含外框、列號與高度的可讀格式
func (f *Field) DebugString() string {
	var sb strings.Builder
	for y := MapHeight - 2; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < MapWidth; x++ {
			c := f.cells[x][y]
			if c == Empty && y > VisibleHeight {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteByte(c.Char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" h  ")
	for x := 1; x <= Width; x++ {
		fmt.Fprintf(&sb, "%d ", f.heights[x])
	}
	sb.WriteByte('\n')
	return sb.String()
}
