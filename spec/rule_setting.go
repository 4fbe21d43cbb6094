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
	"github.com/zintix-labs/chainlab/sdk/field"
)

// RuleSetting 計分表與時間設定。表格留空時使用內建值 (field.TsuRules)。
type RuleSetting struct {
	Name             string `yaml:"name"                 json:"name"`
	ChainBonus       []int  `yaml:"chain_bonus"          json:"chain_bonus"`
	ColorBonus       []int  `yaml:"color_bonus"          json:"color_bonus"`
	LongBonus        []int  `yaml:"long_bonus"           json:"long_bonus"`
	VanishDelay      *int   `yaml:"vanish_delay"         json:"vanish_delay"`
	DropFramesPerRow *int   `yaml:"drop_frames_per_row"  json:"drop_frames_per_row"`
	LandingDelay     *int   `yaml:"landing_delay"        json:"landing_delay"`

	Rules    *field.Rules `yaml:"-"  json:"-"`
	initFlag bool
}

// Init 檢查並建立 Rules
func (rs *RuleSetting) Init() error {
	if rs.initFlag {
		return nil
	}
	r := field.TsuRules()
	if len(rs.ChainBonus) > 0 {
		r.ChainBonus = append([]int(nil), rs.ChainBonus...)
	}
	if len(rs.ColorBonus) > 0 {
		r.ColorBonus = append([]int(nil), rs.ColorBonus...)
	}
	if len(rs.LongBonus) > 0 {
		r.LongBonus = append([]int(nil), rs.LongBonus...)
	}
	if rs.VanishDelay != nil {
		r.VanishDelay = *rs.VanishDelay
	}
	if rs.DropFramesPerRow != nil {
		r.DropFramesPerRow = *rs.DropFramesPerRow
	}
	if rs.LandingDelay != nil {
		r.LandingDelay = *rs.LandingDelay
	}
	if err := validRules(&r); err != nil {
		return err
	}
	if rs.Name == "" {
		rs.Name = "tsu"
	}
	rs.Rules = &r
	rs.initFlag = true
	return nil
}

func validRules(r *field.Rules) error {
	tables := []struct {
		name string
		vals []int
	}{
		{"chain_bonus", r.ChainBonus},
		{"color_bonus", r.ColorBonus},
		{"long_bonus", r.LongBonus},
	}
	for _, tb := range tables {
		for i, v := range tb.vals {
			if v < 0 {
				return errs.NewFatal(fmt.Sprintf("%s[%d] is negative", tb.name, i))
			}
		}
	}
	if len(r.ColorBonus) <= field.NumNormalColors {
		return errs.NewFatal(fmt.Sprintf("color_bonus needs at least %d entries", field.NumNormalColors+1))
	}
	if len(r.LongBonus) <= field.VanishThreshold {
		return errs.NewFatal(fmt.Sprintf("long_bonus needs at least %d entries", field.VanishThreshold+1))
	}
	if r.VanishDelay < 0 || r.DropFramesPerRow < 0 || r.LandingDelay < 0 {
		return errs.NewFatal("frame settings must be >= 0")
	}
	return nil
}
