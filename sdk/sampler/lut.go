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
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
)

// maxLUTCap 展開後的長度上限，超過請改用 AliasTable
const maxLUTCap uint64 = 1 << 20

// LUT 把索引 i 重複 weights[i] 次的展開表，一次 IntN 完成抽樣
type LUT []int

// BuildLUT 建立展開表
func BuildLUT[T Integers](weights []T) (LUT, error) {
	total, err := checkWeights(weights)
	if err != nil {
		return nil, errs.Wrap(err, "lut")
	}
	if total > maxLUTCap {
		return nil, errs.Warnf("lut: total weight %d exceeds %d, use alias table", total, maxLUTCap)
	}
	lut := make(LUT, 0, int(total))
	for i, w := range weights {
		for j := T(0); j < w; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 空表回傳 -1
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}
