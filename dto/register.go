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

package dto

import (
	"sort"
	"strings"
	"sync"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/field"
)

// DefaultRulesName 請求未指定規則時使用
const DefaultRulesName = "tsu"

var (
	rulesMu      sync.RWMutex
	rulesPresets = map[string]field.Rules{
		DefaultRulesName: field.TsuRules(),
	}
)

// RegisterRules 以名稱註冊一組規則，供 simulate/place 請求以 "rules" 欄位選用。
// 名稱不分大小寫；重複註冊會覆寫。服務啟動時會把每款遊戲的規則以遊戲名稱註冊進來。
func RegisterRules(name string, r field.Rules) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errs.NewFatal("rules name is empty")
	}
	rulesMu.Lock()
	defer rulesMu.Unlock()
	rulesPresets[name] = r
	return nil
}

// RulesNames 已註冊的規則名稱 (排序)
func RulesNames() []string {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	out := make([]string, 0, len(rulesPresets))
	for k := range rulesPresets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func rulesByName(name string) (*field.Rules, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultRulesName
	}
	rulesMu.RLock()
	r, ok := rulesPresets[name]
	rulesMu.RUnlock()
	if !ok {
		return nil, errs.Warnf("unknown rules %q", name)
	}
	return &r, nil
}
