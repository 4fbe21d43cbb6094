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

package field

import "testing"

// 接近滿盤的混色盤面
const benchTower = "" +
	".G.BRG\n" +
	"GBRRYR\n" +
	"RRYYBY\n" +
	"RGYRBR\n" +
	"YGYRBY\n" +
	"YGBGYR\n" +
	"GRBGYR\n" +
	"BRBYBY\n" +
	"RYYBYY\n" +
	"BRBYBR\n" +
	"BGBYRR\n" +
	"YGBGBG\n" +
	"RBGBGG"

func BenchmarkSimulate(b *testing.B) {
	base := MustParse(benchTower)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := base
		f.Simulate()
	}
}

func BenchmarkSimulateCoef(b *testing.B) {
	base := MustParse(benchTower)
	var cr CoefResult
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := base
		f.SimulateCoef(&cr)
	}
}

func BenchmarkDropPairUndo(b *testing.B) {
	base := MustParse(twoChain)
	p := Pair{Axis: Red, Child: Yellow}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := base
		for _, d := range AllDecisions {
			if f.DropPair(d, p) {
				f.ChainWillOccurAfter(d)
				f.UndoPair(d)
			}
		}
	}
}
