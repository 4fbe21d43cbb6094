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
	r2 "math/rand/v2"

	"github.com/zintix-labs/chainlab/errs"
)

// PCG64 128-bit 狀態、64-bit 輸出，底層為 math/rand/v2 的 PCG
type PCG64 struct {
	pcg *r2.PCG
}

func newPCG64WithSeed(seed int64) *PCG64 {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	return &PCG64{pcg: r2.NewPCG(splitmix64(x), splitmix64(x^0xda942042e4dd58b5))}
}

func (r *PCG64) Uint64() uint64 {
	return r.pcg.Uint64()
}

// Float64 53 bits 精度
func (r *PCG64) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

func (r *PCG64) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	return uint(below64(r, uint64(n)))
}

func (r *PCG64) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	return int(below64(r, uint64(n)))
}

func (r *PCG64) Snapshot() ([]byte, error) {
	b, err := r.pcg.MarshalBinary()
	if err != nil {
		return nil, errs.Wrap(err, "pcg64 snapshot")
	}
	return b, nil
}

func (r *PCG64) Restore(data []byte) error {
	if err := r.pcg.UnmarshalBinary(data); err != nil {
		return errs.WrapAs(errs.Warn, err, "pcg64 restore")
	}
	return nil
}
