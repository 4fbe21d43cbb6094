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

package chainlab

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/spec"
)

// Runtime 對外服務的執行期：每款遊戲一個 MachinePool。
// 由 Lab.BuildRuntime 建立，建立後遊戲清單固定不變。
type Runtime struct {
	lab *Lab

	pools map[spec.GID]*MachinePool
	ids   []spec.GID // 固定順序，列舉與觀測用

	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string

	poolSize int
}

// Play 把請求交給對應遊戲的機台池
func (rt *Runtime) Play(ctx context.Context, gid spec.GID, req *buf.PlayRequest) (*buf.GameResult, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", errs.WrapAs(errs.Warn, ctx.Err(), "play canceled/timeout")
	case <-rt.done:
		return nil, "", errs.NewFatal("runtime closed: " + rt.ClosedReason())
	default:
	}
	mp, ok := rt.pools[gid]
	if !ok {
		return nil, "", errs.NewWarn("game id not found")
	}
	return mp.Play(ctx, req)
}

// Lab 建立此 Runtime 的 Lab (唯讀使用：目錄、摘要、模擬器)
func (rt *Runtime) Lab() *Lab {
	return rt.lab
}

// IDs 所有遊戲編號
func (rt *Runtime) IDs() []spec.GID {
	return append([]spec.GID(nil), rt.ids...)
}

func (rt *Runtime) PoolSize() int {
	return rt.poolSize
}

// Metrics 依 IDs 順序回傳每個池的觀測快照
func (rt *Runtime) Metrics() []MachinePoolMetrics {
	out := make([]MachinePoolMetrics, 0, len(rt.ids))
	for _, id := range rt.ids {
		out = append(out, rt.pools[id].Metrics())
	}
	return out
}

// Close 關閉 runtime 與所有池；可重複呼叫
func (rt *Runtime) Close() {
	rt.closeWithReason("closed")
}

func (rt *Runtime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)
		for _, id := range rt.ids {
			rt.pools[id].closeWithReason(reason)
		}
	})
}

func (rt *Runtime) Closed() bool {
	return rt.closed.Load()
}

func (rt *Runtime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
