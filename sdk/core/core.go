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

// Package core 可快照的亂數來源 (PCG64 / PCG32) 與常用取樣工具。
package core

import (
	"math"

	"github.com/zintix-labs/chainlab/errs"
)

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 同時要求 Uint64 / Float64 / UintN / IntN，讓 32-bit 與 64-bit 輸出的實作
// 各自提供最合適的 bounded 取樣與浮點精度。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以 seed 建立 PRNG。
//
// 合約：同一個實作下 New(seed) 必須是決定性的。
// 盤面序列、模擬與快照回放都依賴這一點才能重現同一局。
type PRNGFactory interface {
	New(int64) PRNG
}

// PCG64Factory 預設的 PRNG
type PCG64Factory struct{}

// New 滿足合約
func (PCG64Factory) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

// PCG32Factory 32-bit 輸出的 PCG，在 32-bit 平台上較快
type PCG32Factory struct{}

// New 滿足合約
func (PCG32Factory) New(seed int64) PRNG {
	return newPCG32WithSeed(seed)
}

// Default 回傳預設的 PRNGFactory (PCG64)
func Default() PRNGFactory {
	return PCG64Factory{}
}

// FactoryByName 依設定檔名稱選擇 PRNG；空字串為預設
func FactoryByName(name string) (PRNGFactory, error) {
	switch name {
	case "", "pcg64":
		return PCG64Factory{}, nil
	case "pcg32":
		return PCG32Factory{}, nil
	default:
		return nil, errs.Warnf("unknown prng %q", name)
	}
}

// Core 封裝 PRNG，並提供常用取樣與工具方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts Fisher-Yates 就地重排。
// 每一種排列出現機率相同，O(N) 且不配置記憶體。
func (c *Core) ShuffleInts(src []int) {
	if len(src) <= 1 {
		return
	}
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// ExpFloat64 標準指數分佈 (rate = 1)，以反函數法 -ln(1-U) 取樣
func (c *Core) ExpFloat64() float64 {
	return -math.Log1p(-c.Float64())
}
