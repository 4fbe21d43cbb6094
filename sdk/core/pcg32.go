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

package core

import (
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/zintix-labs/chainlab/errs"
)

const (
	pcg32Mul   = 6364136223846793005
	pcg32Unit  = 1.0 / (1 << 32)
	pcg32State = 16 // Snapshot 長度：state + inc
)

// PCG32 64-bit 狀態、32-bit 輸出 (XSH RR)。在 32-bit 平台上比 PCG64 快。
type PCG32 struct {
	state uint64
	inc   uint64 // 必為奇數
}

// newPCG32WithSeed 標準初始化：先以 stream 走一步，加上 seed 再走一步
func newPCG32WithSeed(seed int64) *PCG32 {
	r := &PCG32{inc: 1<<1 | 1}
	r.next32()
	r.state += uint64(seed)
	r.next32()
	return r
}

func (r *PCG32) next32() uint32 {
	old := r.state
	r.state = old*pcg32Mul + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	return bits.RotateLeft32(xorshifted, -int(old>>59))
}

// Uint64 兩次輸出拼接，高位在前
func (r *PCG32) Uint64() uint64 {
	hi := uint64(r.next32())
	return hi<<32 | uint64(r.next32())
}

// Float64 32 bits 精度
func (r *PCG32) Float64() float64 {
	return float64(r.next32()) * pcg32Unit
}

func (r *PCG32) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	if uint64(n) <= math.MaxUint32 {
		return uint(below32(r, uint32(n)))
	}
	return uint(below64(r, uint64(n)))
}

func (r *PCG32) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	return int(r.UintN(uint(n)))
}

func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, pcg32State)
	b = binary.BigEndian.AppendUint64(b, r.state)
	return binary.BigEndian.AppendUint64(b, r.inc), nil
}

func (r *PCG32) Restore(data []byte) error {
	if len(data) != pcg32State {
		return errs.Warnf("pcg32 snapshot must be %d bytes, got %d", pcg32State, len(data))
	}
	inc := binary.BigEndian.Uint64(data[8:])
	if inc&1 == 0 {
		return errs.NewWarn("pcg32 snapshot: increment must be odd")
	}
	r.state = binary.BigEndian.Uint64(data[:8])
	r.inc = inc
	return nil
}
