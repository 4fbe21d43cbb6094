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

package spec

import (
	"fmt"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/sdk/sampler"
)

// SeqSetting 落下序列的產生方式
//
//	num_colors:    每局使用的顏色數 (3 或 4)
//	color_weights: 依 R, B, Y, G 順序的權重；決定開局選哪幾色，以及每一格抽到該色的機率
//	sampler:       alias | lut
//	prng:          pcg64 | pcg32
type SeqSetting struct {
	NumColors    int    `yaml:"num_colors"     json:"num_colors"`
	ColorWeights []int  `yaml:"color_weights"  json:"color_weights"`
	Sampler      string `yaml:"sampler"        json:"sampler"`
	PRNG         string `yaml:"prng"           json:"prng"`

	Factory  core.PRNGFactory `yaml:"-"  json:"-"`
	initFlag bool
}

// Init 檢查設定並補上預設值
func (ss *SeqSetting) Init() error {
	if ss.initFlag {
		return nil
	}
	if ss.NumColors == 0 {
		ss.NumColors = field.NumNormalColors
	}
	if ss.NumColors < 3 || ss.NumColors > field.NumNormalColors {
		return errs.NewFatal(fmt.Sprintf("num_colors must be 3..%d, got %d", field.NumNormalColors, ss.NumColors))
	}
	if len(ss.ColorWeights) == 0 {
		ss.ColorWeights = make([]int, field.NumNormalColors)
		for i := range ss.ColorWeights {
			ss.ColorWeights[i] = 1
		}
	}
	if len(ss.ColorWeights) != field.NumNormalColors {
		return errs.NewFatal(fmt.Sprintf("color_weights needs %d entries", field.NumNormalColors))
	}
	positive := 0
	for _, w := range ss.ColorWeights {
		if w < 0 {
			return errs.NewFatal("color_weights must be >= 0")
		}
		if w > 0 {
			positive++
		}
	}
	if positive < ss.NumColors {
		return errs.NewFatal(fmt.Sprintf("only %d colors have weight > 0, need %d", positive, ss.NumColors))
	}
	if _, err := sampler.NewPicker(sampler.Kind(ss.Sampler), ss.ColorWeights); err != nil {
		return errs.Fatalf("sampler: %v", err)
	}
	fac, err := core.FactoryByName(ss.PRNG)
	if err != nil {
		return errs.Fatalf("prng: %v", err)
	}
	ss.Factory = fac
	ss.initFlag = true
	return nil
}
