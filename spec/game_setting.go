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

// Package spec 設定檔的資料結構：規則 (計分表、時間)、顏色序列、對局參數。
//
// 設定檔可以是 YAML 或 JSON，讀進來之後由 init 驗證並推導出執行期需要的值
// (例如 *field.Rules、顏色抽樣器)，推導值的欄位都標為 `yaml:"-" json:"-"`。
package spec

import (
	"fmt"

	"github.com/zintix-labs/chainlab/errs"
)

// GID 遊戲編號
type GID uint

// GameSetting 建立一個 Machine 所需的全部設定
type GameSetting struct {
	GameName    string      `yaml:"game_name"     json:"game_name"`
	GameID      GID         `yaml:"game_id"       json:"game_id"`
	RuleSetting RuleSetting `yaml:"rule_setting"  json:"rule_setting"`
	SeqSetting  SeqSetting  `yaml:"seq_setting"   json:"seq_setting"`
	PlaySetting PlaySetting `yaml:"play_setting"  json:"play_setting"`
}

// init 依序初始化子設定後做整體檢查
func (gs *GameSetting) init() error {
	if err := gs.RuleSetting.Init(); err != nil {
		return errs.Wrap(err, fmt.Sprintf("game_name: %s rule_setting", gs.GameName))
	}
	if err := gs.SeqSetting.Init(); err != nil {
		return errs.Wrap(err, fmt.Sprintf("game_name: %s seq_setting", gs.GameName))
	}
	if err := gs.PlaySetting.Init(); err != nil {
		return errs.Wrap(err, fmt.Sprintf("game_name: %s play_setting", gs.GameName))
	}
	return gs.valid()
}

func (gs *GameSetting) valid() error {
	if gs.GameName == "" {
		return errs.NewFatal("empty game_name")
	}
	if gs.GameID == 0 {
		return errs.NewFatal(fmt.Sprintf("game_name: %s err: game_id must be > 0", gs.GameName))
	}
	return nil
}
