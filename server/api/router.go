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

// Package api 組裝 HTTP 路由：middleware、首頁、dev 與 v1。
package api

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/api/dev"
	v1 "github.com/zintix-labs/chainlab/server/api/v1"
	"github.com/zintix-labs/chainlab/server/httperr"
	"github.com/zintix-labs/chainlab/server/netsvr"
	"github.com/zintix-labs/chainlab/server/netsvr/middleware"
	"github.com/zintix-labs/chainlab/server/svrcfg"
)

// RegisterRoutes 建立 Runtime 並註冊所有路由。
// 回傳的 Runtime 由呼叫端在關閉時 Close。sCfg 需先通過 Valid。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) (*chainlab.Runtime, error) {
	if err := registerRules(sCfg.Lab); err != nil {
		return nil, err
	}
	rt, err := sCfg.Lab.BuildRuntime(sCfg.PoolSize)
	if err != nil {
		return nil, errs.Wrap(err, "build runtime failed")
	}
	h, err := v1.NewHandler(rt, sCfg.Log)
	if err != nil {
		rt.Close()
		return nil, err
	}

	registerMiddleware(svr, sCfg.Log)
	svr.Get("/", index)
	dev.Register(svr, sCfg.Lab)
	svr.Group("/v1", h.Register)
	return rt, nil
}

// 順序：請求編號 → access log → panic 攔截 → 壓縮
func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

// registerRules 每款遊戲的規則以遊戲名稱註冊，simulate/place 可用 "rules" 選用
func registerRules(lab *chainlab.Lab) error {
	lab.Freeze()
	rules, err := lab.Rules()
	if err != nil {
		return err
	}
	for name, r := range rules {
		if err := dto.RegisterRules(name, r); err != nil {
			return err
		}
	}
	return nil
}

func index(w http.ResponseWriter, r *http.Request) {
	type indexResponse struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	httperr.JSON(w, indexResponse{
		Name: "chainlab",
		Routes: []string{
			"GET /v1/games", "GET /v1/rules", "GET /v1/metrics",
			"POST /v1/simulate", "POST /v1/place",
			"GET|POST /v1/play", "GET|POST /v1/sim", "POST /v1/simbycfg",
			"GET /dev/meta", "POST /dev/games", "POST /dev/sim",
		},
	})
}
