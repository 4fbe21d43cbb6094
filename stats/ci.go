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

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// meanCI 平均數的常態近似信賴區間
func meanCI(mean, std float64, n int, confidence float64) CI {
	if n < 2 {
		return CI{Lo: mean, Hi: mean}
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	se := std / math.Sqrt(float64(n))
	return CI{Lo: max(mean-z*se, 0), Hi: mean + z*se}
}

// proportionCICP Clopper–Pearson 精確區間 (n 次中 k 次成功)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// quantileCI 第 q 分位數的區間估計 (sorted 需已排序)。
// 把 order statistic 的秩視為二項，以 Beta 反推 p 的範圍後再換回樣本值。
func quantileCI(sorted []float64, q, confidence float64) CI {
	n := len(sorted)
	if n == 0 {
		return CI{}
	}
	if n == 1 {
		return CI{Lo: sorted[0], Hi: sorted[0]}
	}
	alpha := 1 - confidence
	k := int(q * float64(n))
	k = min(max(k, 1), n-1)

	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := min(max(int(pLo*float64(n)), 0), n-1)
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui--
	}
	ui = min(max(ui, 0), n-1)
	return CI{Lo: sorted[li], Hi: sorted[ui]}
}
