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

import "sort"

// ScoreBuckets 單局總分的分布區間
type ScoreBuckets struct {
	bounds []int // 各區間的下界 (第一格固定為 0 分)
	labels []string
}

// Buckets 預設區間：[0,0], [1,1000), [1000,5000), ..., [100000,+inf)
//
// 請勿修改預設值
var Buckets = &ScoreBuckets{
	bounds: []int{0, 1, 1000, 5000, 10000, 20000, 50000, 100000},
	labels: []string{"[0,0]", "[1,1000)", "[1000,5000)", "[5000,10000)", "[10000,20000)", "[20000,50000)", "[50000,100000)", "[100000,+inf)"},
}

func (b *ScoreBuckets) Len() int {
	return len(b.bounds)
}

func (b *ScoreBuckets) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Index score 所在的區間；負分算在第一格
func (b *ScoreBuckets) Index(score int) int {
	// 第一個下界大於 score 的位置減一
	i := sort.SearchInts(b.bounds, score+1) - 1
	return max(i, 0)
}
