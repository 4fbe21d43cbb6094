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

// BitField flood fill 用的已訪問集合，每列一個 uint16 (一個 bit 對應一列)。
// 零值即為空集合；Clear 只需清 8 個字。
type BitField struct {
	bits [MapWidth]uint16
}

// Get 回報 (x, y) 是否已標記
func (b *BitField) Get(x, y int) bool {
	return b.bits[x]&(1<<uint(y)) != 0
}

// Set 標記 (x, y)
func (b *BitField) Set(x, y int) {
	b.bits[x] |= 1 << uint(y)
}

// Unset 取消標記
func (b *BitField) Unset(x, y int) {
	b.bits[x] &^= 1 << uint(y)
}

// Clear 清空
func (b *BitField) Clear() {
	b.bits = [MapWidth]uint16{}
}
