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

package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/httperr"
	"github.com/zintix-labs/chainlab/stats"
)

type simResponse struct {
	Seed     int64         `json:"seed"`
	Stats    *stats.Report `json:"stats"`
	UsedTime int64         `json:"used_ms"`
}

// Sim 以目錄中的遊戲跑模擬統計；相同 gid/games/workers/seed 的結果相同
func (h *Handler) Sim(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeSimRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else if seed, err = chainlab.RandomSeed(); err != nil {
		h.fail(w, r, err)
		return
	}
	sim, err := h.lab.NewSimulatorWithSeed(req.GameId, seed)
	if err != nil {
		h.fail(w, r, errs.Wrap(err, "build simulator failed"))
		return
	}
	rep, used, err := sim.SimMP(req.Games, req.Workers, false)
	if err != nil {
		h.fail(w, r, errs.Wrap(err, "simulate failed"))
		return
	}
	httperr.JSON(w, simResponse{Seed: seed, Stats: rep, UsedTime: used.Milliseconds()})
}

// SimByCfg 以呼叫端調整過的設定 (例如換計分表或玩家參數) 模擬。
// 設定的 game_id 與 game_name 必須對應目錄中同一款遊戲。
func (h *Handler) SimByCfg(w http.ResponseWriter, r *http.Request) {
	type simByCfgRequest struct {
		Games   int             `json:"games"`
		Workers int             `json:"workers"`
		Seed    *int64          `json:"seed,omitempty"`
		Cfg     json.RawMessage `json:"cfg"`
	}
	req := new(simByCfgRequest)
	r.Body = http.MaxBytesReader(w, r.Body, maxCfgBody)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.fail(w, r, errs.Warnf("invalid json: %v", err))
		return
	}
	if len(req.Cfg) == 0 {
		h.fail(w, r, errs.NewWarn("cfg is required"))
		return
	}
	if req.Games < 1 || req.Games > dto.MaxSimGames {
		h.fail(w, r, errs.Warnf("games must be between 1 and %d", dto.MaxSimGames))
		return
	}
	req.Workers = max(1, min(req.Workers, dto.MaxSimWorkers))

	var seed int64
	var err error
	if req.Seed != nil {
		seed = *req.Seed
	} else if seed, err = chainlab.RandomSeed(); err != nil {
		h.fail(w, r, err)
		return
	}
	sim, err := h.lab.NewSimulatorByJSON(req.Cfg, seed)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rep, used, err := sim.SimMP(req.Games, req.Workers, false)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperr.JSON(w, simResponse{Seed: seed, Stats: rep, UsedTime: used.Milliseconds()})
}
