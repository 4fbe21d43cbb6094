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

// Package server 預設的 HTTP 服務組裝與啟動入口。
//
// 所有依賴 (Lab、logger、機台數) 都由 svrcfg.SvrCfg 注入；這裡不讀檔案也不讀環境變數。
// 需要把路由掛進既有服務時，直接呼叫 api.RegisterRoutes 即可。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/api"
	"github.com/zintix-labs/chainlab/server/app"
	"github.com/zintix-labs/chainlab/server/netsvr"
	"github.com/zintix-labs/chainlab/server/svrcfg"
)

// Run 以預設的 chi server (:5808) 啟動，阻塞到收到停止訊號
func Run(sCfg *svrcfg.SvrCfg) error {
	return RunWithSvr(sCfg, netsvr.NewChiServerDefault())
}

// RunWithSvr 以呼叫端提供的 NetSvr 啟動 (自訂位址、timeout 或其他 adapter)。
// 設定驗證失敗時錯誤同時寫到 stderr，避免 logger 不可用時看不到原因。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("chi server is not ready")
	}

	rt, err := api.RegisterRoutes(svr, sCfg)
	if err != nil {
		sCfg.Log.Error("[chainlab] register routes failed", slog.Any("err", err))
		return err
	}

	a := app.NewWith(svr)
	a.SetLogger(sCfg.Log)
	a.OnStop(func(context.Context) error {
		rt.Close()
		return nil
	})
	sCfg.Log.Info("[chainlab] listening",
		slog.String("addr", svr.Address()),
		slog.Int("games", len(rt.IDs())),
		slog.Int("pool_size", rt.PoolSize()),
	)
	if err := a.Run(); err != nil {
		sCfg.Log.Error("[chainlab] app stopped", slog.Any("err", err))
		return err
	}
	sCfg.Log.Info("[chainlab] stopped")
	return nil
}
