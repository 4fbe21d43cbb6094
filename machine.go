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
	"bufio"
	"crypto/rand"
	"encoding/json"
	"io"
	"math"
	"math/big"
	"sync"

	"github.com/zintix-labs/chainlab/corefmt"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/core"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/sdk/plan"
	"github.com/zintix-labs/chainlab/sdk/seq"
	"github.com/zintix-labs/chainlab/spec"
)

// Machine 一台自動對局的機台：盤面、落下序列與 Player。
//
// 同一台 Machine 不應被多個 goroutine 同時使用；Play 會加鎖保護，但模擬器的熱路徑
// (PlayGame) 不加鎖，由 Simulator 保證一台機台只屬於一個 worker。
//
// GameResult 會被重用，每次 PlayGame 會覆寫內容。
type Machine struct {
	gameName string
	gameID   spec.GID
	rules    *field.Rules
	maxTurns int

	core   *core.Core
	seq    *seq.Generator
	player plan.Player

	field field.Field
	turn  int
	dead  bool

	GameResult *buf.GameResult
	tr         buf.TurnResult
	mu         sync.Mutex
	initseed   int64
}

// newMachine seed 由 crypto/rand 產生，對外服務時序列不可預測；seed 會記錄在 initseed
func newMachine(gs *spec.GameSetting, keepLog bool) (*Machine, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, seed, keepLog)
}

// RandomSeed crypto/rand 產生的 [0, MaxInt64) seed，請求未指定 seed 時使用
func RandomSeed() (int64, error) {
	return cryptoSeed()
}

func cryptoSeed() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "new crypto seed error in go std lib")
	}
	return n.Int64(), nil
}

// newMachineWithSeed 同一份設定與 seed 會下出同一局
func newMachineWithSeed(gs *spec.GameSetting, seed int64, keepLog bool) (*Machine, error) {
	fac := gs.SeqSetting.Factory
	if fac == nil {
		fac = core.Default()
	}
	c := core.New(fac.New(seed))
	g, err := seq.FromSetting(c, &gs.SeqSetting)
	if err != nil {
		return nil, err
	}
	p, err := plan.NewPlayer(&gs.PlaySetting, gs.RuleSetting.Rules, c)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		gameName:   gs.GameName,
		gameID:     gs.GameID,
		rules:      gs.RuleSetting.Rules,
		maxTurns:   gs.PlaySetting.MaxTurns,
		core:       c,
		seq:        g,
		player:     p,
		field:      field.New(),
		GameResult: buf.NewGameResult(gs, keepLog),
		initseed:   seed,
	}
	return m, nil
}

func (m *Machine) GameName() string { return m.gameName }

func (m *Machine) GameID() spec.GID { return m.gameID }

// InitSeed 建立時的 seed
func (m *Machine) InitSeed() int64 { return m.initseed }

// Field 目前盤面的複本
func (m *Machine) Field() field.Field { return m.field }

// Turn 本局已放的組數
func (m *Machine) Turn() int { return m.turn }

// IsOver 本局已結束
func (m *Machine) IsOver() bool { return m.dead || m.turn >= m.maxTurns }

// NewGame 清空盤面並重新選色
func (m *Machine) NewGame() error {
	m.field.Clear()
	m.turn = 0
	m.dead = false
	return m.seq.Reset()
}

// step 放一組；回傳 false 表示本局結束
func (m *Machine) step() bool {
	if m.IsOver() {
		return false
	}
	pairs := m.seq.Peek(seq.Visible)
	d, ok := m.player.Decide(&m.field, pairs)
	if !ok {
		m.dead = true
		return false
	}
	pair := m.seq.Next()
	if !m.field.DropPair(d, pair) {
		m.dead = true
		return false
	}
	m.turn++
	res := m.rules.SimulateAfter(&m.field, d)

	m.tr = buf.TurnResult{
		Turn:     m.turn,
		Pair:     pair,
		Decision: d,
		Result:   res,
		AllClear: res.Chains > 0 && m.field.IsAllClear(),
	}
	m.GameResult.AppendTurn(&m.tr)
	if m.field.IsDead() {
		m.dead = true
		return false
	}
	return true
}

// play 從目前狀態最多再放 turns 組 (<= 0 表示到上限)，結果寫入 GameResult
func (m *Machine) play(turns int) *buf.GameResult {
	m.GameResult.Reset()
	if turns <= 0 {
		turns = m.maxTurns
	}
	for i := 0; i < turns; i++ {
		if !m.step() {
			break
		}
	}
	m.GameResult.End(m.dead)
	return m.GameResult
}

// PlayGame 開新局並下到結束；常用於模擬器或測試
func (m *Machine) PlayGame() (*buf.GameResult, error) {
	if err := m.NewGame(); err != nil {
		return nil, err
	}
	return m.play(0), nil
}

// Play 對外入口：依請求開新局或還原快照後繼續，回傳結果複本與結束後的快照
func (m *Machine) Play(req *buf.PlayRequest) (*buf.GameResult, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.Snapshot != "" {
		if err := m.restore(req.Snapshot); err != nil {
			return nil, "", err
		}
	} else if err := m.NewGame(); err != nil {
		return nil, "", errs.Wrap(err, "new game failed")
	}

	keep := m.GameResult.KeepLog
	m.GameResult.KeepLog = req.KeepLog
	gr := m.play(req.Turns).Clone()
	m.GameResult.KeepLog = keep

	after, err := m.snapshot()
	if err != nil {
		return nil, "", errs.NewFatal("after snapshot error " + err.Error())
	}
	return gr, after, nil
}

// Snapshot 機台可還原的完整狀態
type Snapshot struct {
	GameID spec.GID  `json:"gid"`
	Field  string    `json:"field"`
	Turn   int       `json:"turn"`
	Dead   bool      `json:"dead,omitempty"`
	Seq    seq.State `json:"seq"`
	Core   []byte    `json:"core"`
}

func (m *Machine) state() (*Snapshot, error) {
	cs, err := m.core.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		GameID: m.gameID,
		Field:  m.field.String(),
		Turn:   m.turn,
		Dead:   m.dead,
		Seq:    m.seq.State(),
		Core:   cs,
	}, nil
}

func (m *Machine) setState(s *Snapshot) error {
	if s.GameID != m.gameID {
		return errs.NewWarn("snapshot belongs to another game")
	}
	f, err := field.Parse(s.Field)
	if err != nil {
		return err
	}
	if s.Turn < 0 || s.Turn > m.maxTurns {
		return errs.Warnf("snapshot turn %d out of range", s.Turn)
	}
	rem, err := m.core.Snapshot()
	if err != nil {
		return errs.NewFatal("core snapshot error " + err.Error())
	}
	if err := m.core.Restore(s.Core); err != nil {
		return errs.Warnf("restore core err %v", err)
	}
	if err := m.seq.SetState(s.Seq); err != nil {
		if e := m.core.Restore(rem); e != nil {
			return errs.NewFatal("fall back err " + e.Error())
		}
		return err
	}
	m.field = f
	m.turn = s.Turn
	m.dead = s.Dead || f.IsDead()
	return nil
}

func (m *Machine) snapshot() (string, error) {
	s, err := m.state()
	if err != nil {
		return "", err
	}
	return corefmt.Pack(s)
}

func (m *Machine) restore(src string) error {
	var s Snapshot
	if err := corefmt.Unpack(src, &s); err != nil {
		return err
	}
	return m.setState(&s)
}

// SnapshotString 目前狀態 (zstd + Base64URL)
func (m *Machine) SnapshotString() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// RestoreString 還原 SnapshotString 的結果
func (m *Machine) RestoreString(src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restore(src)
}

// SaveTo 以長度前綴框寫出快照 (zstd 壓縮的 JSON)
func (m *Machine) SaveTo(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.state()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return errs.Wrap(err, "snapshot marshal failed")
	}
	return corefmt.WriteBlobFrame(w, corefmt.Compress(raw))
}

// LoadFrom 讀取 SaveTo 寫出的一個框並還原
func (m *Machine) LoadFrom(r *bufio.Reader) error {
	b, err := corefmt.ReadBlobFrame(r, maxSnapshotBytes)
	if err != nil {
		return err
	}
	raw, err := corefmt.Decompress(b)
	if err != nil {
		return err
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return errs.Warnf("snapshot unmarshal failed: %v", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setState(&s)
}

const maxSnapshotBytes = 64 << 10
