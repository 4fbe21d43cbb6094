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
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/recorder"
	"github.com/zintix-labs/chainlab/spec"
	"github.com/zintix-labs/chainlab/stats"
)

const capPrepare int = 100

// Simulator 以一或多台機台連續自動對局並紀錄統計。
//
// 同一個 initSeed 下，Sim 與 SimMP (同樣的 workers) 的結果都可以重現：
// 每台機台的 seed 由 seedMaker 依序產生，局數以靜態方式分給每個 worker。
type Simulator struct {
	GameName  string                   // 遊戲名稱
	GameId    spec.GID                 // 遊戲編號
	gs        *spec.GameSetting        // 建立新機台用
	initSeed  int64                    // 初始下的種子
	seedmaker *seedMaker               // 種子生成器
	mBuf      []*Machine               // 併發執行機台實例
	rBuf      []*recorder.GameRecorder // 併發對局紀錄員
}

func newSimulator(gs *spec.GameSetting) (*Simulator, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, seed)
}

func newSimulatorWithSeed(gs *spec.GameSetting, seed int64) (*Simulator, error) {
	s := &Simulator{
		GameName:  gs.GameName,
		GameId:    gs.GameID,
		gs:        gs,
		initSeed:  seed,
		seedmaker: newSeedMaker(seed),
		mBuf:      make([]*Machine, 1, capPrepare),
		rBuf:      make([]*recorder.GameRecorder, 0, capPrepare),
	}
	m, err := newMachineWithSeed(gs, s.initSeed, false)
	if err != nil {
		return nil, err
	}
	s.mBuf[0] = m
	return s, nil
}

// InitSeed 模擬器的初始種子
func (s *Simulator) InitSeed() int64 {
	return s.initSeed
}

// Sim 單線模擬器：以一台機台連續下 games 局，回傳統計結果與用時
func (s *Simulator) Sim(games int, showpb bool) (*stats.Report, time.Duration, error) {
	defer s.reset()
	if games < 1 {
		return nil, 0, errs.NewWarn("games must > 0")
	}
	s.prepareRecorders(1)
	r := s.rBuf[0]
	m := s.mBuf[0]

	bar := pb.StartNew(games)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < games; i++ {
		gr, err := m.PlayGame()
		if err != nil {
			bar.Finish()
			return nil, 0, err
		}
		r.Record(gr)
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	return r.Done(), used, nil
}

// SimMP 平行執行 workers 台機台，合計 games 局；合併統計結果後回傳統計結果與用時
func (s *Simulator) SimMP(games int, workers int, showpb bool) (*stats.Report, time.Duration, error) {
	defer s.reset()
	if workers <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if games < 1 {
		return nil, 0, errs.NewWarn("games must > 0")
	}
	workers = min(workers, games)
	for len(s.mBuf) < workers {
		m, err := newMachineWithSeed(s.gs, s.seedmaker.next(), false)
		if err != nil {
			return nil, 0, err
		}
		s.mBuf = append(s.mBuf, m)
	}
	s.prepareRecorders(workers)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	wg.Add(workers)
	bar := pb.StartNew(games)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	per, rem := games/workers, games%workers
	for i := 0; i < workers; i++ {
		n := per
		if i < rem {
			n++
		}
		go func(m *Machine, rec *recorder.GameRecorder, n int) {
			defer wg.Done()
			for range n {
				gr, err := m.PlayGame()
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				rec.Record(gr)
				bar.Increment()
			}
		}(s.mBuf[i], s.rBuf[i], n)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if firstErr != nil {
		return nil, 0, firstErr
	}

	rec, err := recorder.MergeGameRecorder(s.rBuf)
	if err != nil {
		return nil, 0, err
	}
	return rec.Done(), used, nil
}

func (s *Simulator) prepareRecorders(n int) {
	for len(s.rBuf) < n {
		s.rBuf = append(s.rBuf, recorder.NewGameRecorder(s.GameName, s.GameId))
	}
	for _, r := range s.rBuf[:n] {
		r.Reset()
	}
	s.rBuf = s.rBuf[:n]
}

func (s *Simulator) reset() {
	s.rBuf = s.rBuf[:0]
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// next 走全週期 LCG (不重複)，再用可逆 mix63 打散。
// 可能被多個 goroutine 同時呼叫 (機台池補機台)，state 以 CAS 推進。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63 只用可逆的 bit 操作與乘奇數 (mod 2^63)
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
