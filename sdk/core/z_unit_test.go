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
	"math"
	"slices"
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
}

func TestCorePickAndShuffle(t *testing.T) {
	c := New(Default().New(9))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}

	src := []int{1, 2, 3, 4}
	c.ShuffleInts(src)
	if len(src) != 4 {
		t.Fatalf("unexpected length after shuffle")
	}
	want := []int{1, 2, 3, 4}
	got := slices.Clone(src)
	slices.Sort(want)
	slices.Sort(got)
	if !slices.Equal(want, got) {
		t.Fatalf("shuffle changed elements: %v", src)
	}
}

func TestExpFloat64Deterministic(t *testing.T) {
	c1 := New(Default().New(11))
	c2 := New(Default().New(11))
	v1 := c1.ExpFloat64()
	v2 := c2.ExpFloat64()
	if v1 != v2 {
		t.Fatalf("expected deterministic ExpFloat64")
	}
	if v1 <= 0 || math.IsNaN(v1) || math.IsInf(v1, 0) {
		t.Fatalf("unexpected ExpFloat64 value: %v", v1)
	}
}

func TestSnapshotRestoreReplays(t *testing.T) {
	for _, name := range []string{"pcg64", "pcg32"} {
		fac, err := FactoryByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		rng := fac.New(42)
		rng.Uint64()
		snap, err := rng.Snapshot()
		if err != nil {
			t.Fatalf("%s snapshot: %v", name, err)
		}
		want := []uint64{rng.Uint64(), rng.Uint64(), rng.Uint64()}

		other := fac.New(1)
		if err := other.Restore(snap); err != nil {
			t.Fatalf("%s restore: %v", name, err)
		}
		for i, w := range want {
			if got := other.Uint64(); got != w {
				t.Fatalf("%s replay mismatch at %d: got %d want %d", name, i, got, w)
			}
		}
	}
}

func TestFactoryByNameUnknown(t *testing.T) {
	if _, err := FactoryByName("mt19937"); err == nil {
		t.Fatalf("expected error for unknown prng")
	}
}

func TestPCG32RestoreRejectsShortState(t *testing.T) {
	if err := (PCG32Factory{}).New(1).Restore([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short snapshot")
	}
}

func TestBoundedRangeAndSpread(t *testing.T) {
	for _, name := range []string{"pcg64", "pcg32"} {
		fac, _ := FactoryByName(name)
		c := New(fac.New(2025))
		var hist [6]int
		for i := 0; i < 60000; i++ {
			v := c.IntN(6)
			if v < 0 || v >= 6 {
				t.Fatalf("%s IntN out of range: %d", name, v)
			}
			hist[v]++
		}
		for k, n := range hist {
			if n < 9000 || n > 11000 {
				t.Fatalf("%s bucket %d count %d too far from 10000", name, k, n)
			}
		}
		if c.IntN(0) != -1 || c.UintN(0) != 0 {
			t.Fatalf("%s zero bound contract broken", name)
		}
		big := ^uint(0) >> 1
		if v := c.UintN(big); v >= big {
			t.Fatalf("%s UintN large bound out of range", name)
		}
		if f := c.Float64(); f < 0 || f >= 1 {
			t.Fatalf("%s Float64 out of range: %v", name, f)
		}
	}
}

func TestPCG32RestoreRejectsEvenIncrement(t *testing.T) {
	r := PCG32Factory{}.New(3)
	snap, _ := r.Snapshot()
	snap[15] &^= 1
	if err := r.Restore(snap); err == nil {
		t.Fatalf("even increment should be rejected")
	}
}
