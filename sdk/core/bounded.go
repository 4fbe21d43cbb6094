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

import "math/bits"

// 無偏的有界取樣 (乘法取高位，落在偏差區間時重抽)，兩種 PCG 共用。
// 演算法見 Lemire, "Fast Random Integer Generation in an Interval" (2019)。

type source64 interface {
	Uint64() uint64
}

type source32 interface {
	next32() uint32
}

// below64 [0,n)，n 必須 > 0
func below64(s source64, n uint64) uint64 {
	if n&(n-1) == 0 {
		return s.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(s.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(s.Uint64(), n)
		}
	}
	return hi
}

// below32 [0,n)，n 必須 > 0
func below32(s source32, n uint32) uint32 {
	if n&(n-1) == 0 {
		return s.next32() & (n - 1)
	}
	prod := uint64(s.next32()) * uint64(n)
	if low := uint32(prod); low < n {
		thresh := -n % n
		for low < thresh {
			prod = uint64(s.next32()) * uint64(n)
			low = uint32(prod)
		}
	}
	return uint32(prod >> 32)
}

// splitmix64 把 seed 展開成分散良好的 64-bit 值
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
