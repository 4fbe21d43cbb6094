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

// Package app 統一啟動與關閉多個 Component。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// App 啟動所有 Component；收到 SIGINT/SIGTERM、呼叫端 ctx 結束，
// 或任一 Component 的 Run 返回時，依註冊的相反順序關閉。
type App struct {
	comps   []Component
	stops   []StopFunc
	timeout time.Duration
	log     *slog.Logger
}

func New() *App {
	return &App{timeout: defaultShutdownTimeout}
}

// NewWith 建立並註冊 comps
func NewWith(comps ...Component) *App {
	a := New()
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// OnStop 在所有 Component 關閉之後執行 (同樣是相反順序)
func (a *App) OnStop(fn StopFunc) {
	a.stops = append(a.stops, fn)
}

// SetShutdownTimeout d <= 0 時維持預設 5s
func (a *App) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		a.timeout = d
	}
}

// SetLogger 關閉過程的錯誤寫到 log；未設定時不記錄
func (a *App) SetLogger(log *slog.Logger) {
	a.log = log
}

// Run 等同 RunContext(context.Background())
func (a *App) Run() error {
	return a.RunContext(context.Background())
}

// RunContext 阻塞到收到停止訊號。訊號或 ctx 結束回傳 nil；
// Component 先行結束時回傳它的錯誤 (正常結束為 nil)。
func (a *App) RunContext(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) { errCh <- c.Run() }(c)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	if err := a.shutdown(); err != nil && a.log != nil {
		a.log.Error("shutdown", slog.Any("err", err))
	}
	return runErr
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	var all []error
	for i := len(a.comps) - 1; i >= 0; i-- {
		if err := a.comps[i].Shutdown(ctx); err != nil {
			all = append(all, err)
		}
	}
	for i := len(a.stops) - 1; i >= 0; i-- {
		if err := a.stops[i](ctx); err != nil {
			all = append(all, err)
		}
	}
	return errors.Join(all...)
}
