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
	"math"
	"math/bits"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
)

// AliasTable Vose alias method 的整數版本。
//
// 每個槽位只放「自己」與「別名」兩個選項；抽樣時先選槽位，
// 再以 IntN(Total) < Prob[idx] 決定取自己或別名。
// 全程整數運算，機率總和恆為 Total * Size，沒有浮點誤差累積。
type AliasTable struct {
	Prob    []int
	Aliases []int
	Size    int
	Total   int
}

// BuildAliasTable 以非負整數權重建表，權重不需正規化
func BuildAliasTable(weights []int) (*AliasTable, error) {
	total, err := checkWeights(weights)
	if err != nil {
		return nil, errs.Wrap(err, "alias table")
	}
	n := len(weights)
	if hi, lo := bits.Mul64(total, uint64(n)); hi != 0 || lo > math.MaxInt64 {
		return nil, errs.NewWarn("alias table: weights too large")
	}

	t := int(total)
	prob := make([]int, n)
	aliases := make([]int, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)

	for i, w := range weights {
		prob[i] = w * n
		aliases[i] = i
		if prob[i] < t {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		aliases[s] = l
		prob[l] += prob[s] - t
		if prob[l] < t {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	return &AliasTable{Prob: prob, Aliases: aliases, Size: n, Total: t}, nil
}

// Pick 固定消耗兩次 IntN
func (at *AliasTable) Pick(c *core.Core) int {
	if at.Size == 0 {
		return -1
	}
	idx := c.IntN(at.Size)
	if c.IntN(at.Total) < at.Prob[idx] {
		return idx
	}
	return at.Aliases[idx]
}
