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
	"encoding/json"

	"github.com/zintix-labs/chainlab/errs"
	"gopkg.in/yaml.v3"
)

// GetGameSettingByYAML 由 YAML 建立已驗證的設定
func GetGameSettingByYAML(data []byte) (*GameSetting, error) {
	return decodeSetting("yaml", data, yaml.Unmarshal)
}

// GetGameSettingByJSON 由 JSON 建立已驗證的設定
func GetGameSettingByJSON(data []byte) (*GameSetting, error) {
	return decodeSetting("json", data, json.Unmarshal)
}

// decodeSetting 格式錯誤與驗證失敗一律回 Warn，原始錯誤保留在 Cause
func decodeSetting(format string, data []byte, unmarshal func([]byte, any) error) (*GameSetting, error) {
	gs := new(GameSetting)
	if err := unmarshal(data, gs); err != nil {
		return nil, errs.WrapAs(errs.Warn, err, "decode "+format+" game setting")
	}
	if err := gs.init(); err != nil {
		return nil, errs.WrapAs(errs.Warn, err, "invalid game setting")
	}
	return gs, nil
}
