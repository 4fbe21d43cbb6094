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

// Position 盤面座標
type Position struct {
	X, Y int8
}

// QueueCapacity 足以容納整個盤面
const QueueCapacity = Width * Height

// PositionQueue 固定容量的座標佇列。
//
// 同一個緩衝同時是 BFS 的工作佇列與輸出：讀取指標追著寫入指標走，
// 一個群組收集完時，[start, Len()) 就是該群組的所有成員。
// 一次消除中的多個群組也接續寫在同一個佇列裡，成為整批消除的清單。
type PositionQueue struct {
	buf [QueueCapacity]Position
	n   int
}

// Push 加入座標。容量以盤面大小決定，呼叫端保證不會溢出 (每格最多入列一次)。
func (q *PositionQueue) Push(x, y int) {
	q.buf[q.n] = Position{X: int8(x), Y: int8(y)}
	q.n++
}

// Len 目前元素數量
func (q *PositionQueue) Len() int {
	return q.n
}

// At 第 i 個元素
func (q *PositionQueue) At(i int) Position {
	return q.buf[i]
}

// Truncate 退回到長度 n (捨棄未達門檻的群組)
func (q *PositionQueue) Truncate(n int) {
	q.n = n
}

// Reset 清空 (不清內容)
func (q *PositionQueue) Reset() {
	q.n = 0
}

// Slice 回傳目前內容的切片視圖 (共用底層陣列)
func (q *PositionQueue) Slice() []Position {
	return q.buf[:q.n]
}
