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

// Package sampler 加權抽樣：顏色出現機率、開局顏色組合等。
//
//   - AliasTable：O(1) 抽樣，記憶體與權重總和無關
//   - LUT：展開查表，權重總和小時最快
//   - WeightedSample：不放回抽 k 個 (Efraimidis-Spirakis)
package sampler

import (
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
)

// Integers LUT 接受的權重型別
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Picker 依權重回傳索引
type Picker interface {
	Pick(c *core.Core) int
}

// Kind 抽樣器種類 (設定檔使用)
type Kind string

const (
	KindAlias Kind = "alias"
	KindLUT   Kind = "lut"
)

// NewPicker 依種類建立抽樣器；空字串為 alias
func NewPicker(kind Kind, weights []int) (Picker, error) {
	switch kind {
	case "", KindAlias:
		at, err := BuildAliasTable(weights)
		if err != nil {
			return nil, err
		}
		return at, nil
	case KindLUT:
		lut, err := BuildLUT(weights)
		if err != nil {
			return nil, err
		}
		return lut, nil
	default:
		return nil, errs.Warnf("unknown sampler kind %q", kind)
	}
}

// checkWeights 權重不可為負、不可全為零，回傳總和
func checkWeights[T Integers](weights []T) (uint64, error) {
	if len(weights) == 0 {
		return 0, errs.NewWarn("weights are empty")
	}
	var total uint64
	for i, w := range weights {
		if w < 0 {
			return 0, errs.Warnf("weight[%d] is negative", i)
		}
		uw := uint64(w)
		if total > maxTotalWeight-uw {
			return 0, errs.NewWarn("total weight overflows")
		}
		total += uw
	}
	if total == 0 {
		return 0, errs.NewWarn("all weights are zero")
	}
	return total, nil
}

const maxTotalWeight = uint64(1<<62 - 1)
