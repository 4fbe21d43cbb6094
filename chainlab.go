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

// Package chainlab 連鎖模擬引擎的組裝入口與執行入口。
//
// Lab 持有遊戲目錄 (catalog.Catalog)，依遊戲編號建立 Machine (單台自動對局)、
// Simulator (大量對局統計) 與 Runtime (對外服務用的機台池)。
//
// 設定檔來源一律以 fs.FS 注入：可以是 go:embed 的內建設定 (configs.FS)，也可以是 os.DirFS。
//
// 使用流程：
//
//	lab, _ := chainlab.NewAuto(chainlab.Configs(configs.FS))
//	sim, _ := lab.NewSimulatorWithSeed(1001, 42)
//	rep, used, _ := sim.SimMP(10000, 8, true)
package chainlab

import (
	"io/fs"
	"strings"

	"github.com/zintix-labs/chainlab/catalog"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

// Configs 把一或多個設定來源打包成 New 需要的參數
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Lab 組裝器：註冊階段建立並檢查目錄，Freeze 之後進入執行階段。
// 編號與名稱的唯一性只保證在同一個 Lab 內。
type Lab struct {
	cat *catalog.Catalog
	sum []catalog.Summary
}

// New 建立 Lab；此時目錄是空的，需要 Register 或 RegisterAll
func New(cfgs []fs.FS) (*Lab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Lab{cat: cat}, nil
}

// NewAuto 註冊所有設定檔並 Freeze，直接進入執行階段
func NewAuto(cfgs []fs.FS) (*Lab, error) {
	lab, err := New(cfgs)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

func (l *Lab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

// RegisterAll 解析所有設定檔，全部成功才一次註冊 (依檔名排序，行為可重現)
func (l *Lab) RegisterAll() error {
	ents, err := l.cat.Scan()
	if err != nil {
		return err
	}
	return l.cat.Register(ents...)
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

func (l *Lab) EntryByID(id spec.GID) (catalog.Entry, bool) {
	return l.cat.GetByID(id)
}

func (l *Lab) EntryByName(name string) (catalog.Entry, bool) {
	return l.cat.GetByName(name)
}

func (l *Lab) IDs() []spec.GID {
	return l.cat.IDs()
}

func (l *Lab) All() []catalog.Entry {
	return l.cat.All()
}

// Summary 所有遊戲的摘要 (Freeze 後才可用，結果會快取)
func (l *Lab) Summary() ([]catalog.Summary, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if l.sum != nil {
		return l.sum, nil
	}
	ids := l.cat.IDs()
	sum := make([]catalog.Summary, 0, len(ids))
	for _, id := range ids {
		gs, err := l.cat.GameSettingByID(id)
		if err != nil {
			return nil, errs.Wrap(err, "parse game setting failed")
		}
		sum = append(sum, catalog.SummaryOf(gs))
	}
	l.sum = sum
	return l.sum, nil
}

// Rules 每款遊戲的規則，鍵為遊戲名稱 (小寫)
func (l *Lab) Rules() (map[string]field.Rules, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	out := make(map[string]field.Rules, len(l.cat.IDs()))
	for _, id := range l.cat.IDs() {
		gs, err := l.cat.GameSettingByID(id)
		if err != nil {
			return nil, errs.Wrap(err, "parse game setting failed")
		}
		out[strings.ToLower(gs.GameName)] = *gs.RuleSetting.Rules
	}
	return out, nil
}

func (l *Lab) setting(id spec.GID) (*spec.GameSetting, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.GameSettingByID(id)
}

// NewMachine 以隨機 seed (crypto/rand) 建立機台
func (l *Lab) NewMachine(id spec.GID, keepLog bool) (*Machine, error) {
	gs, err := l.setting(id)
	if err != nil {
		return nil, err
	}
	return newMachine(gs, keepLog)
}

// NewMachineWithSeed 同一個 seed 會下出同一局；任意時間點的重現請用快照
func (l *Lab) NewMachineWithSeed(id spec.GID, seed int64, keepLog bool) (*Machine, error) {
	gs, err := l.setting(id)
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, seed, keepLog)
}

// NewMachineByJSON 以呼叫端提供的設定建立機台；編號與名稱必須是目錄內同一款遊戲
func (l *Lab) NewMachineByJSON(raw []byte, seed int64) (*Machine, error) {
	gs, err := l.customSetting(raw, spec.GetGameSettingByJSON)
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, seed, true)
}

// NewMachineByYAML 同 NewMachineByJSON
func (l *Lab) NewMachineByYAML(raw []byte, seed int64) (*Machine, error) {
	gs, err := l.customSetting(raw, spec.GetGameSettingByYAML)
	if err != nil {
		return nil, err
	}
	return newMachineWithSeed(gs, seed, true)
}

func (l *Lab) customSetting(raw []byte, parse func([]byte) (*spec.GameSetting, error)) (*spec.GameSetting, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	gs, err := parse(raw)
	if err != nil {
		return nil, errs.Warnf("invalid game setting: %v", err)
	}
	if err := l.validCfg(gs); err != nil {
		return nil, err
	}
	return gs, nil
}

func (l *Lab) validCfg(gs *spec.GameSetting) error {
	ent, ok := l.cat.GetByID(gs.GameID)
	if !ok {
		return errs.NewWarn("gid not exist")
	}
	ent2, ok := l.cat.GetByName(gs.GameName)
	if !ok {
		return errs.NewWarn("game name not exist")
	}
	if ent.GID != ent2.GID {
		return errs.NewWarn("game id is not matched game name")
	}
	return nil
}

func (l *Lab) NewSimulator(id spec.GID) (*Simulator, error) {
	gs, err := l.setting(id)
	if err != nil {
		return nil, err
	}
	return newSimulator(gs)
}

func (l *Lab) NewSimulatorWithSeed(id spec.GID, seed int64) (*Simulator, error) {
	gs, err := l.setting(id)
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, seed)
}

// NewSimulatorByJSON 以呼叫端調整過的設定模擬 (例如換計分表)
func (l *Lab) NewSimulatorByJSON(raw []byte, seed int64) (*Simulator, error) {
	gs, err := l.customSetting(raw, spec.GetGameSettingByJSON)
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, seed)
}

func (l *Lab) NewSimulatorByYAML(raw []byte, seed int64) (*Simulator, error) {
	gs, err := l.customSetting(raw, spec.GetGameSettingByYAML)
	if err != nil {
		return nil, err
	}
	return newSimulatorWithSeed(gs, seed)
}

// BuildRuntime 為每款遊戲建立 poolSize 台機台；進入 runtime 前會先 Freeze
func (l *Lab) BuildRuntime(poolSize int) (*Runtime, error) {
	l.Freeze()
	ids := l.cat.IDs()
	if len(ids) == 0 {
		return nil, errs.NewFatal("no games registered")
	}
	rt := &Runtime{
		lab:      l,
		pools:    make(map[spec.GID]*MachinePool, len(ids)),
		ids:      ids,
		done:     make(chan struct{}),
		poolSize: max(1, poolSize),
	}
	rt.reason.Store("")
	for _, id := range ids {
		gs, err := l.cat.GameSettingByID(id)
		if err != nil {
			return nil, err
		}
		seed, err := cryptoSeed()
		if err != nil {
			return nil, err
		}
		mp, err := newMachinePool(rt.poolSize, gs, seed)
		if err != nil {
			return nil, err
		}
		rt.pools[id] = mp
	}
	return rt, nil
}

// NewDevSimulator 單機台、可重現的模擬器；seed 相同時與 Simulator 第一台機台同步
func (l *Lab) NewDevSimulator(id spec.GID, seed int64) (*DevSimulator, error) {
	sim, err := l.NewSimulatorWithSeed(id, seed)
	if err != nil {
		return nil, err
	}
	m, err := l.NewMachineWithSeed(id, seed, true)
	if err != nil {
		return nil, err
	}
	a, err := sim.mBuf[0].SnapshotString()
	if err != nil {
		return nil, err
	}
	b, err := m.SnapshotString()
	if err != nil {
		return nil, err
	}
	if a != b {
		return nil, errs.NewFatal("seeds are not equal")
	}
	return &DevSimulator{sim: sim, m: m}, nil
}
