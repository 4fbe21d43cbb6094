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

// Package dev 開發用 API：可重現的單線對局與模擬，每次回應都附帶前後快照。
package dev

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/catalog"
	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/httperr"
	"github.com/zintix-labs/chainlab/server/netsvr"
	"github.com/zintix-labs/chainlab/spec"
)

// devRequest
//
//   - gid 與 game (名稱，也可是數字字串) 擇一，同時存在時以 gid 為準。
//   - seed 為 int64 字串，空字串時隨機產生。
//   - snap 有值時先還原到該快照再執行，seed 只用來建立模擬器。
type devRequest struct {
	GID   spec.GID `json:"gid"`
	Game  string   `json:"game"`
	Games int      `json:"games"`
	Seed  string   `json:"seed"`
	Snap  string   `json:"snap"`
}

// Register
//
//	GET  /dev/meta   遊戲摘要與規則名稱 (前端下拉選單)
//	POST /dev/games  逐局結果 (含逐手紀錄)
//	POST /dev/sim    統計報表
func Register(r netsvr.NetRouter, lab *chainlab.Lab) {
	r.Group("/dev", func(d netsvr.NetRouter) {
		d.Get("/meta", meta(lab))
		d.Post("/games", games(lab))
		d.Post("/sim", sim(lab))
	})
}

func meta(lab *chainlab.Lab) http.HandlerFunc {
	type metaResponse struct {
		Games []catalog.Summary `json:"games"`
		Rules []string          `json:"rules"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := lab.Summary()
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		httperr.JSON(w, metaResponse{Games: sum, Rules: dto.RulesNames()})
	}
}

func games(lab *chainlab.Lab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ds, err := prepare(lab, r)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		var rep chainlab.DevGamesReport
		if req.Snap != "" {
			rep, err = ds.RestoreGames(req.Snap, req.Games)
		} else {
			rep, err = ds.Games(req.Games)
		}
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		httperr.JSON(w, rep)
	}
}

func sim(lab *chainlab.Lab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ds, err := prepare(lab, r)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		var rep chainlab.DevSimReport
		if req.Snap != "" {
			rep, err = ds.RestoreSim(req.Snap, req.Games)
		} else {
			rep, err = ds.Sim(req.Games)
		}
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		httperr.JSON(w, rep)
	}
}

// prepare 解碼請求、找到遊戲並建立 DevSimulator
func prepare(lab *chainlab.Lab, r *http.Request) (*devRequest, *chainlab.DevSimulator, error) {
	req := new(devRequest)
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(req); err != nil {
		return nil, nil, errs.Warnf("invalid json: %v", err)
	}
	req.Snap = strings.TrimSpace(req.Snap)
	if req.Games < 1 {
		return nil, nil, errs.NewWarn("games is required")
	}
	gid, err := resolveGID(lab, req)
	if err != nil {
		return nil, nil, err
	}
	seed, err := resolveSeed(req.Seed)
	if err != nil {
		return nil, nil, err
	}
	ds, err := lab.NewDevSimulator(gid, seed)
	if err != nil {
		return nil, nil, err
	}
	return req, ds, nil
}

func resolveGID(lab *chainlab.Lab, req *devRequest) (spec.GID, error) {
	if req.GID > 0 {
		if _, ok := lab.EntryByID(req.GID); !ok {
			return 0, errs.NewWarn("gid not found")
		}
		return req.GID, nil
	}
	name := strings.TrimSpace(req.Game)
	if name == "" {
		return 0, errs.NewWarn("game is required")
	}
	if ent, ok := lab.EntryByName(name); ok {
		return ent.GID, nil
	}
	if n, err := strconv.ParseUint(name, 10, 64); err == nil {
		if ent, ok := lab.EntryByID(spec.GID(n)); ok {
			return ent.GID, nil
		}
	}
	return 0, errs.NewWarn("game not found")
}

func resolveSeed(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return chainlab.RandomSeed()
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewWarn("seed must be int64")
	}
	return v, nil
}
