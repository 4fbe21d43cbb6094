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

package dto

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/sdk/seq"
	"github.com/zintix-labs/chainlab/spec"
)

const (
	maxBody        = 1 << 20 // POST body 上限 1MiB
	MaxPlayTurns   = 1000
	MaxSimGames    = 2_000_000
	MaxSimWorkers  = 64
	DefaultSimRuns = 10_000
)

// decodeJSON 嚴格解碼：限制大小並拒絕未知欄位，避免靜默丟資料
func decodeJSON(r *http.Request, v any) error {
	if r == nil {
		return errs.NewWarn("nil request")
	}
	if r.Method != http.MethodPost {
		return errs.NewWarn("method not allowed")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Warnf("invalid json: %v", err)
	}
	return nil
}

func queryInt(q url.Values, key string, dst *int) error {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errs.Warnf("invalid %s: %v", key, err)
	}
	*dst = v
	return nil
}

func queryGID(q url.Values, dst *spec.GID) error {
	s := q.Get("gid")
	if s == "" {
		return nil
	}
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return errs.Warnf("invalid gid: %v", err)
	}
	*dst = spec.GID(u)
	return nil
}

// ============================================================
// ** play **
// ============================================================

// PlayRequest 自動對局請求。
//
//   - snapshot 缺省：開新局。
//   - snapshot 有值：還原到該狀態後繼續 (回放或續玩)，可帶上一次回應的 snapshot。
//
// turns <= 0 表示下到遊戲設定的上限。
type PlayRequest struct {
	GameId   spec.GID `json:"gid"`
	Turns    int      `json:"turns"`
	Snapshot string   `json:"snapshot,omitempty"`
	Log      bool     `json:"log,omitempty"`
}

// DecodePlayRequest GET 讀 query (gid/turns/log，不支援 snapshot)，POST 讀 JSON
func DecodePlayRequest(r *http.Request) (*PlayRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	req := new(PlayRequest)
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		if err := queryGID(q, &req.GameId); err != nil {
			return nil, err
		}
		if err := queryInt(q, "turns", &req.Turns); err != nil {
			return nil, err
		}
		if s := q.Get("log"); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errs.Warnf("invalid log: %v", err)
			}
			req.Log = v
		}
		return req, nil
	}
	if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Parse 轉成機台使用的請求
func (pr *PlayRequest) Parse() (*buf.PlayRequest, error) {
	if pr.Turns < 0 || pr.Turns > MaxPlayTurns {
		return nil, errs.Warnf("turns must be between 0 and %d", MaxPlayTurns)
	}
	return &buf.PlayRequest{
		Turns:    pr.Turns,
		Snapshot: pr.Snapshot,
		KeepLog:  pr.Log,
	}, nil
}

// ============================================================
// ** simulate / place **
// ============================================================

// SimulateRequest 對盤面執行連鎖模擬。
// field 為文字盤面 (每列 6 字元，上到下)；rules 為已註冊的規則名稱，缺省為 tsu。
type SimulateRequest struct {
	Field string `json:"field"`
	Rules string `json:"rules,omitempty"`
	Track bool   `json:"track,omitempty"`
	Steps bool   `json:"steps,omitempty"`
}

func DecodeSimulateRequest(r *http.Request) (*SimulateRequest, error) {
	req := new(SimulateRequest)
	if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Parse 解析盤面與規則
func (sr *SimulateRequest) Parse() (field.Field, *field.Rules, error) {
	f, err := field.Parse(sr.Field)
	if err != nil {
		return field.Field{}, nil, err
	}
	r, err := rulesByName(sr.Rules)
	if err != nil {
		return field.Field{}, nil, err
	}
	return f, r, nil
}

// PlaceRequest 在盤面放下一組後模擬。pair 為兩個字元 (軸、子)，例如 "RB"
type PlaceRequest struct {
	Field string `json:"field"`
	Pair  string `json:"pair"`
	X     int    `json:"x"`
	R     int    `json:"r"`
	Rules string `json:"rules,omitempty"`
}

func DecodePlaceRequest(r *http.Request) (*PlaceRequest, error) {
	req := new(PlaceRequest)
	if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Placement PlaceRequest 解析後的內容
type Placement struct {
	Field    field.Field
	Pair     field.Pair
	Decision field.Decision
	Rules    *field.Rules
}

func (pr *PlaceRequest) Parse() (*Placement, error) {
	f, err := field.Parse(pr.Field)
	if err != nil {
		return nil, err
	}
	ps, err := seq.ParsePairs(pr.Pair)
	if err != nil {
		return nil, err
	}
	if len(ps) != 1 {
		return nil, errs.Warnf("pair must be exactly one pair, got %q", pr.Pair)
	}
	d := field.Decision{X: pr.X, R: pr.R}
	if !d.IsValid() {
		return nil, errs.Warnf("invalid decision x=%d r=%d", pr.X, pr.R)
	}
	r, err := rulesByName(pr.Rules)
	if err != nil {
		return nil, err
	}
	return &Placement{Field: f, Pair: ps[0], Decision: d, Rules: r}, nil
}

// ============================================================
// ** sim **
// ============================================================

// SimRequest 以目錄中的遊戲跑模擬統計。seed 缺省時使用隨機 seed
type SimRequest struct {
	GameId  spec.GID `json:"gid"`
	Games   int      `json:"games"`
	Workers int      `json:"workers"`
	Seed    *int64   `json:"seed,omitempty"`
}

// DecodeSimRequest GET 讀 query (gid/games/workers/seed)，POST 讀 JSON
func DecodeSimRequest(r *http.Request) (*SimRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	req := new(SimRequest)
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		if err := queryGID(q, &req.GameId); err != nil {
			return nil, err
		}
		if err := queryInt(q, "games", &req.Games); err != nil {
			return nil, err
		}
		if err := queryInt(q, "workers", &req.Workers); err != nil {
			return nil, err
		}
		if s := q.Get("seed"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.Warnf("invalid seed: %v", err)
			}
			req.Seed = &v
		}
	} else if err := decodeJSON(r, req); err != nil {
		return nil, err
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}
	return req, nil
}

func (sr *SimRequest) normalize() error {
	if sr.GameId == 0 {
		return errs.NewWarn("gid is required")
	}
	if sr.Games == 0 {
		sr.Games = DefaultSimRuns
	}
	if sr.Workers == 0 {
		sr.Workers = 1
	}
	if sr.Games < 1 || sr.Games > MaxSimGames {
		return errs.Warnf("games must be between 1 and %d", MaxSimGames)
	}
	if sr.Workers < 1 || sr.Workers > MaxSimWorkers {
		return errs.Warnf("workers must be between 1 and %d", MaxSimWorkers)
	}
	return nil
}
