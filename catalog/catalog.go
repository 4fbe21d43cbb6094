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

// Package catalog 遊戲目錄：遊戲編號、名稱與設定檔檔名的對應。
//
// 設定檔來源是一或多個平鋪的 fs.FS (不允許子目錄)，檔名在所有來源間必須唯一。
// 目錄在 Freeze 之後只讀，可安全地被多個 goroutine 查詢。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/spec"
)

var (
	ErrDupID   = errs.NewFatal("duplicate game id")
	ErrDupName = errs.NewFatal("duplicate game name")
)

// Entry 一筆目錄資料
type Entry struct {
	GID        spec.GID `json:"gid"`
	Name       string   `json:"name"`
	ConfigName string   `json:"config"`
}

// Summary 對外列舉用的遊戲摘要
type Summary struct {
	GID       spec.GID `json:"gid"`
	Name      string   `json:"name"`
	Rules     string   `json:"rules"`
	NumColors int      `json:"num_colors"`
	Player    string   `json:"player"`
	Depth     int      `json:"depth"`
	MaxTurns  int      `json:"max_turns"`
}

// SummaryOf 由設定產生摘要
func SummaryOf(gs *spec.GameSetting) Summary {
	return Summary{
		GID:       gs.GameID,
		Name:      gs.GameName,
		Rules:     gs.RuleSetting.Name,
		NumColors: gs.SeqSetting.NumColors,
		Player:    gs.PlaySetting.Player,
		Depth:     gs.PlaySetting.Depth,
		MaxTurns:  gs.PlaySetting.MaxTurns,
	}
}

type Catalog struct {
	byID   map[spec.GID]Entry
	byName map[string]Entry
	ids    []spec.GID // 遞增排序
	files  map[string]struct{}
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	m, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byID:   map[spec.GID]Entry{},
		byName: map[string]Entry{},
		ids:    make([]spec.GID, 0, 16),
		files:  map[string]struct{}{},
		config: m,
	}, nil
}

func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register 全部檢查通過才一次寫入；任何一筆有問題都不會留下部分結果
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenID := map[spec.GID]struct{}{}
	seenName := map[string]struct{}{}
	seenFile := map[string]struct{}{}
	for i := range ents {
		e := &ents[i]
		e.Name = normName(e.Name)
		if e.Name == "" {
			return errs.NewFatal("game name required")
		}
		if err := validFileName(e.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[e.ConfigName]; !ok {
			return errs.Fatalf("config file not found: %s", e.ConfigName)
		}
		if _, ok := c.byID[e.GID]; ok {
			return ErrDupID
		}
		if _, ok := seenID[e.GID]; ok {
			return ErrDupID
		}
		if _, ok := c.byName[e.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenName[e.Name]; ok {
			return ErrDupName
		}
		_, used := c.files[e.ConfigName]
		_, dup := seenFile[e.ConfigName]
		if used || dup {
			return errs.Fatalf("duplicate config name: %s", e.ConfigName)
		}
		seenID[e.GID] = struct{}{}
		seenName[e.Name] = struct{}{}
		seenFile[e.ConfigName] = struct{}{}
	}
	for _, e := range ents {
		c.files[e.ConfigName] = struct{}{}
		c.byID[e.GID] = e
		c.byName[e.Name] = e
		c.ids = append(c.ids, e.GID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return nil
}

// Scan 解析所有來源中的設定檔，依檔名排序回傳對應的 Entry (不寫入目錄)。
// 任何一個檔案讀取或解析失敗都會直接回傳錯誤。
func (c *Catalog) Scan() ([]Entry, error) {
	names := c.config.names()
	if len(names) == 0 {
		return nil, errs.NewFatal("no config files found to register")
	}
	ents := make([]Entry, 0, len(names))
	for _, name := range names {
		gs, err := c.load(name)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("parse game setting failed: %s", name))
		}
		ents = append(ents, Entry{GID: gs.GameID, Name: gs.GameName, ConfigName: name})
	}
	return ents, nil
}

func (c *Catalog) GetByID(id spec.GID) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[normName(name)]
	return e, ok
}

func (c *Catalog) IDs() []spec.GID {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]spec.GID(nil), c.ids...)
}

func (c *Catalog) All() []Entry {
	es := make([]Entry, 0, len(c.ids))
	for _, id := range c.ids {
		es = append(es, c.byID[id])
	}
	return es
}

// Sources 設定檔來源 (唯讀)
func (c *Catalog) Sources() []fs.FS {
	return c.config.sources()
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	if strings.ContainsAny(file, `/\:`) {
		return errs.Fatalf("invalid config filename: %q (must be a basename)", file)
	}
	if !isConfigExt(file) {
		return errs.Fatalf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file)
	}
	if strings.HasPrefix(file, ".") {
		return errs.Fatalf("invalid config filename: %q (cannot start with '.')", file)
	}
	return nil
}

func isConfigExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseGameSettingByExt(filename string, raw []byte) (*spec.GameSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetGameSettingByYAML(raw)
	case ".json":
		return spec.GetGameSettingByJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported config format: %q", filename)
	}
}

func (c *Catalog) load(file string) (*spec.GameSetting, error) {
	src, ok := c.config.get(file)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, file)
	if err != nil {
		return nil, errs.Wrap(err, "catalog read file error")
	}
	return parseGameSettingByExt(file, raw)
}

// GameSettingByID 讀取並初始化設定檔；每次呼叫都回傳新的一份
func (c *Catalog) GameSettingByID(id spec.GID) (*spec.GameSetting, error) {
	e, ok := c.GetByID(id)
	if !ok {
		return nil, errs.Warnf("game id %d does not exist in catalog", id)
	}
	return c.load(e.ConfigName)
}

// GameSettingByName 同 GameSettingByID，以名稱查詢 (不分大小寫)
func (c *Catalog) GameSettingByName(name string) (*spec.GameSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.Warnf("game %q does not exist in catalog", name)
	}
	return c.load(e.ConfigName)
}

// multiFS 把多個平鋪的設定來源合成一個檔名索引
type multiFS struct {
	src   []fs.FS
	index map[string]int // 檔名 -> 來源
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	m := &multiFS{src: src, index: make(map[string]int, 16)}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
		err := fs.WalkDir(s, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.Fatalf("config FS must be flat (no subdirectories): %q", path)
			}
			if strings.HasPrefix(path, ".") || !isConfigExt(path) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) get(name string) (fs.FS, bool) {
	if i, ok := m.index[name]; ok {
		return m.src[i], true
	}
	return nil, false
}

func (m *multiFS) names() []string {
	ns := make([]string, 0, len(m.index))
	for n := range m.index {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

func (m *multiFS) sources() []fs.FS {
	return append([]fs.FS(nil), m.src...)
}
