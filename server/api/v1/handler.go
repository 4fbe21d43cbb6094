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

// Package v1 對外 API：盤面模擬、放置試算、自動對局與模擬統計。
package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/httperr"
	"github.com/zintix-labs/chainlab/server/netsvr"
)

const (
	playTimeout = 5 * time.Second
	maxCfgBody  = 5 << 20
)

// Handler v1 所有路由共用的依賴
type Handler struct {
	lab *chainlab.Lab
	rt  *chainlab.Runtime
	log *slog.Logger
}

func NewHandler(rt *chainlab.Runtime, log *slog.Logger) (*Handler, error) {
	if rt == nil {
		return nil, errs.NewFatal("runtime is required")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{lab: rt.Lab(), rt: rt, log: log}, nil
}

// Register 掛在 /v1 底下
//
//	GET       /games      遊戲摘要
//	GET       /rules      可用的規則名稱
//	GET       /metrics    機台池觀測
//	POST      /simulate   盤面 → 連鎖結果
//	POST      /place      盤面 + 一組 + 放法 → 放置後的結果
//	GET|POST  /play       自動對局 (可帶 snapshot 續玩)
//	GET|POST  /sim        目錄遊戲的模擬統計
//	POST      /simbycfg   以自訂設定模擬
func (h *Handler) Register(r netsvr.NetRouter) {
	r.Get("/games", h.Games)
	r.Get("/rules", h.Rules)
	r.Get("/metrics", h.Metrics)
	r.Post("/simulate", h.Simulate)
	r.Post("/place", h.Place)
	r.Method([]string{http.MethodGet, http.MethodPost}, "/play", h.Play)
	r.Method([]string{http.MethodGet, http.MethodPost}, "/sim", h.Sim)
	r.Post("/simbycfg", h.SimByCfg)
}

// fail 寫回錯誤，伺服器端問題另外記錄
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	httperr.Log(h.log, r.Method+" "+r.URL.Path, err)
	httperr.Errs(w, err)
}
