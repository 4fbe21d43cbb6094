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
)

// PlaySetting 自動對局的參數
type PlaySetting struct {
	Player   string         `yaml:"player"     json:"player"`    // greedy | random
	Depth    int            `yaml:"depth"      json:"depth"`     // 搜尋往後看幾組 (1..3)
	MaxTurns int            `yaml:"max_turns"  json:"max_turns"` // 每局最多放幾組
	Params   map[string]any `yaml:"params"     json:"params"`    // 交給 player 自行解碼 (DecodeParams)

	initFlag bool
}

const (
	PlayerGreedy = "greedy"
	PlayerRandom = "random"

	maxDepth = 3
)

// Init 檢查設定並補上預設值
func (ps *PlaySetting) Init() error {
	if ps.initFlag {
		return nil
	}
	if ps.Player == "" {
		ps.Player = PlayerGreedy
	}
	if ps.Player != PlayerGreedy && ps.Player != PlayerRandom {
		return errs.NewFatal(fmt.Sprintf("unknown player %q", ps.Player))
	}
	if ps.Depth == 0 {
		ps.Depth = 2
	}
	if ps.Depth < 1 || ps.Depth > maxDepth {
		return errs.NewFatal(fmt.Sprintf("depth must be 1..%d, got %d", maxDepth, ps.Depth))
	}
	if ps.MaxTurns == 0 {
		ps.MaxTurns = 100
	}
	if ps.MaxTurns < 1 {
		return errs.NewFatal("max_turns must be > 0")
	}
	ps.initFlag = true
	return nil
}
