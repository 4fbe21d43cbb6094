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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/spec"
)

// MachinePool 管理某一款遊戲的機台。
//
//   - pool：可借出的健康機台。
//   - broken：對局中 panic 或回傳 Fatal 的機台，送到這裡後立即補一台新機維持容量。
//
// broken 滿了代表在連續故障，池子會自行關閉交給上層處理。
type MachinePool struct {
	gameName      string
	gameId        spec.GID
	gs            *spec.GameSetting
	initSeed      int64
	seedMaker     *seedMaker
	pool          chan *Machine
	broken        chan *Machine
	done          chan struct{} // 關閉後不再借機、還機、補機
	closeOnce     sync.Once
	poolsize      int
	rebuild       atomic.Int32
	inflight      atomic.Int32
	plays         atomic.Int64
	panics        atomic.Int32
	fatals        atomic.Int32
	closeReason   atomic.Value // string
	closeInflight atomic.Int32 // 關閉當下的快照，-1 為尚未關閉
	closeAvail    atomic.Int32
	closeBroken   atomic.Int32
}

const brokenBacklog = 100

// newMachinePool 預先建立 n (至少 1) 台機台；每台的 seed 由 seedMaker 依序產生
func newMachinePool(n int, gs *spec.GameSetting, seed int64) (*MachinePool, error) {
	n = max(1, n)
	p := &MachinePool{
		gameName:  gs.GameName,
		gameId:    gs.GameID,
		gs:        gs,
		initSeed:  seed,
		seedMaker: newSeedMaker(seed),
		pool:      make(chan *Machine, n),
		broken:    make(chan *Machine, brokenBacklog),
		done:      make(chan struct{}),
		poolsize:  n,
	}
	p.closeReason.Store("")
	p.closeInflight.Store(-1)
	p.closeAvail.Store(-1)
	p.closeBroken.Store(-1)

	for i := 0; i < n; i++ {
		m, err := newMachineWithSeed(gs, p.seedMaker.next(), false)
		if err != nil {
			return nil, err
		}
		p.pool <- m
	}
	return p, nil
}

// Close 進入關閉狀態，之後的 Play 直接回傳錯誤
func (p *MachinePool) Close() {
	p.closeWithReason("closed")
}

func (p *MachinePool) Closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// closeWithReason reason 只會寫入一次
func (p *MachinePool) closeWithReason(reason string) {
	p.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		p.closeReason.Store(reason)
		p.closeInflight.Store(p.inflight.Load())
		p.closeAvail.Store(int32(len(p.pool)))
		p.closeBroken.Store(int32(len(p.broken)))
		close(p.done)
	})
}

// Play 借一台機台執行請求。
//
// 請求類錯誤 (Warn，例如快照屬於別款遊戲) 不淘汰機台；panic 或 Fatal 表示機台狀態不可信，送修並補機。
func (p *MachinePool) Play(ctx context.Context, req *buf.PlayRequest) (gr *buf.GameResult, after string, err error) {
	var m *Machine
	select {
	case <-p.done:
		return nil, "", errs.NewFatal("machine pool closed: " + p.ClosedReason())
	case <-ctx.Done():
		return nil, "", errs.WrapAs(errs.Warn, ctx.Err(), "play canceled/timeout")
	case m = <-p.pool:
		p.inflight.Add(1)
	}
	if m == nil {
		return nil, "", errs.NewFatal("machine pool got nil machine")
	}

	defer func() {
		p.inflight.Add(-1)
		isPanic := false
		if r := recover(); r != nil {
			isPanic = true
			p.panics.Add(1)
			gr, after = nil, ""
			err = errs.NewFatal(fmt.Sprintf("machine %s panic : %v", m.gameName, r))
		}
		if p.Closed() {
			return
		}
		if isPanic || errs.IsFatal(err) {
			if !isPanic {
				p.fatals.Add(1)
			}
			p.replace(m, &err)
			return
		}
		select {
		case <-p.done:
		case p.pool <- m:
		}
	}()

	p.plays.Add(1)
	return m.Play(req)
}

// replace 壞機台送修並補上一台新機；失敗時關閉池子並改寫 err
func (p *MachinePool) replace(m *Machine, err *error) {
	select {
	case p.broken <- m:
	default:
		p.closeWithReason("overwhelmed_by_failures")
		if *err == nil {
			*err = errs.NewFatal("machine pool overwhelmed by failures")
		}
		return
	}

	nm, buildErr := newMachineWithSeed(p.gs, p.seedMaker.next(), false)
	p.rebuild.Add(1)
	if buildErr != nil {
		*err = errs.NewFatal(fmt.Sprintf("machine %s can not build", p.gameName))
		p.closeWithReason("rebuild_failed")
		return
	}
	select {
	case <-p.done:
	case p.pool <- nm:
	}
}

func (p *MachinePool) PoolSize() int {
	return p.poolsize
}

func (p *MachinePool) Inflight() int {
	return int(p.inflight.Load())
}

func (p *MachinePool) ReBuild() int {
	return int(p.rebuild.Load())
}

func (p *MachinePool) ClosedReason() string {
	if v := p.closeReason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Available 當下可借出的機台數 (len(pool)，高併發下為近似值)
func (p *MachinePool) Available() int {
	return len(p.pool)
}

// MachinePoolMetrics 拉取式的觀測快照。
//
// Available 與 BrokenBacklog 來自 len(chan)，高併發下是近似值；
// Close 開頭的欄位只在關閉瞬間寫入一次，尚未關閉時為 -1。
type MachinePoolMetrics struct {
	GameName string   `json:"game_name"`
	GameID   spec.GID `json:"game_id"`

	PoolSize      int    `json:"pool_size"`
	Available     int    `json:"available"`
	Inflight      int    `json:"inflight"`
	BrokenBacklog int    `json:"broken_backlog"`
	Plays         int64  `json:"plays"`
	Rebuild       int    `json:"rebuild"`
	Panics        int    `json:"panics"`
	Fatals        int    `json:"fatals"`
	Closed        bool   `json:"closed"`
	CloseReason   string `json:"close_reason"`

	CloseInflight int `json:"close_inflight"`
	CloseAvail    int `json:"close_avail"`
	CloseBroken   int `json:"close_broken"`
}

func (p *MachinePool) Metrics() MachinePoolMetrics {
	return MachinePoolMetrics{
		GameName:      p.gameName,
		GameID:        p.gameId,
		PoolSize:      p.poolsize,
		Available:     len(p.pool),
		Inflight:      int(p.inflight.Load()),
		BrokenBacklog: len(p.broken),
		Plays:         p.plays.Load(),
		Rebuild:       int(p.rebuild.Load()),
		Panics:        int(p.panics.Load()),
		Fatals:        int(p.fatals.Load()),
		Closed:        p.Closed(),
		CloseReason:   p.ClosedReason(),
		CloseInflight: int(p.closeInflight.Load()),
		CloseAvail:    int(p.closeAvail.Load()),
		CloseBroken:   int(p.closeBroken.Load()),
	}
}
