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

package sampler

import (
	"container/heap"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
)

type scored struct {
	idx   int
	score float64
}

// maxHeap 堆頂為目前入選者中分數最大 (最該被淘汰) 的一個
type maxHeap []scored

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return h[i].score > h[j].score }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(scored)) }
func (h *maxHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// WeightedSample 不放回地抽出 k 個索引 (Efraimidis-Spirakis A-Res)。
//
// 每個索引的分數為 Exp(1) / w，分數最小的 k 個入選，結果依分數由小到大排列。
// 權重為 0 的索引永遠不會入選；正權重不足 k 個時回傳較短的結果。
// 空間 O(k)，時間 O(n log k)。
func WeightedSample(c *core.Core, weights []int, k int) ([]int, error) {
	if k <= 0 || len(weights) == 0 {
		return []int{}, nil
	}
	k = min(k, len(weights))

	h := make(maxHeap, 0, k)
	for i, w := range weights {
		if w < 0 {
			return nil, errs.Warnf("weighted sample: weight[%d] is negative", i)
		}
		if w == 0 {
			continue
		}
		score := c.ExpFloat64() / float64(w)
		if h.Len() < k {
			heap.Push(&h, scored{idx: i, score: score})
			continue
		}
		if score < h[0].score {
			h[0] = scored{idx: i, score: score}
			heap.Fix(&h, 0)
		}
	}

	out := make([]int, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(scored).idx
	}
	return out, nil
}
