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
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/stats"
)

const (
	maxDevGames = 500
	maxDevSim   = 1_000_000
)

// DevSimulator 開發模式用的單線模擬器，重點在可審計、可重現。
//
// 每次呼叫都回傳執行前後的快照；把 before 傳回 Restore 系列即可重播同一段對局。
type DevSimulator struct {
	sim    *Simulator // 只使用 Sim (第一台機台)
	m      *Machine   // 與 sim 第一台機台同 seed，保留逐手紀錄
	before string
	after  string
}

// DevGamesReport 逐局結果
type DevGamesReport struct {
	Before  string            `json:"before"`
	After   string            `json:"after"`
	Games   int               `json:"games"`
	Score   int               `json:"score"`
	Results []*buf.GameResult `json:"results"`
}

// Games 以機台下 n 局完整對局並保留逐手紀錄
func (d *DevSimulator) Games(n int) (DevGamesReport, error) {
	if n < 1 || n > maxDevGames {
		return DevGamesReport{}, errs.Warnf("games must be between 1 and %d", maxDevGames)
	}
	before, err := d.m.SnapshotString()
	if err != nil {
		return DevGamesReport{}, err
	}
	rep := DevGamesReport{Before: before, Results: make([]*buf.GameResult, 0, n)}
	for range n {
		gr, err := d.m.PlayGame()
		if err != nil {
			return DevGamesReport{}, errs.Wrap(err, "play error")
		}
		rep.Score += gr.Score
		rep.Results = append(rep.Results, gr.Clone())
	}
	after, err := d.m.SnapshotString()
	if err != nil {
		return DevGamesReport{}, err
	}
	rep.After = after
	rep.Games = n
	d.before, d.after = before, after
	return rep, nil
}

// RestoreGames 還原到 before 後再下 n 局
func (d *DevSimulator) RestoreGames(before string, n int) (DevGamesReport, error) {
	if err := d.m.RestoreString(before); err != nil {
		return DevGamesReport{}, errs.Wrap(err, "machine restore failed")
	}
	return d.Games(n)
}

// DevSimReport 統計結果與前後快照
type DevSimReport struct {
	Before string        `json:"before"`
	After  string        `json:"after"`
	Stat   *stats.Report `json:"statistic"`
}

// Sim 以模擬器的第一台機台連續下 games 局
func (d *DevSimulator) Sim(games int) (DevSimReport, error) {
	if games < 1 || games > maxDevSim {
		return DevSimReport{}, errs.Warnf("games must be between 1 and %d", maxDevSim)
	}
	m := d.sim.mBuf[0]
	before, err := m.SnapshotString()
	if err != nil {
		return DevSimReport{}, err
	}
	rep, _, err := d.sim.Sim(games, false)
	if err != nil {
		return DevSimReport{}, errs.Wrap(err, "sim failed")
	}
	after, err := m.SnapshotString()
	if err != nil {
		return DevSimReport{}, err
	}
	d.before, d.after = before, after
	return DevSimReport{Before: before, After: after, Stat: rep}, nil
}

// RestoreSim 還原模擬器後再模擬
func (d *DevSimulator) RestoreSim(before string, games int) (DevSimReport, error) {
	if err := d.sim.mBuf[0].RestoreString(before); err != nil {
		return DevSimReport{}, errs.Wrap(err, "restore simulator failed")
	}
	return d.Sim(games)
}

// Last 最近一次呼叫的前後快照
func (d *DevSimulator) Last() (before, after string) {
	return d.before, d.after
}
