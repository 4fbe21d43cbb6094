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

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/configs"
	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/server/httperr"
	"github.com/zintix-labs/chainlab/server/logger"
	"github.com/zintix-labs/chainlab/server/netsvr"
	"github.com/zintix-labs/chainlab/server/svrcfg"
	"github.com/zintix-labs/chainlab/stats"
)

const twoChain = "B.....\nRB....\nRB....\nRRB..."

func newTestServer(t *testing.T) (http.Handler, *chainlab.Runtime) {
	t.Helper()
	lab, err := chainlab.NewAuto(chainlab.Configs(configs.FS))
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	cfg := &svrcfg.SvrCfg{Log: logger.NewDefaultLogger(logger.ModeSilence), PoolSize: 2, Lab: lab}
	if err := cfg.Valid(); err != nil {
		t.Fatalf("valid: %v", err)
	}
	svr := netsvr.NewChiServer(":0")
	rt, err := RegisterRoutes(svr, cfg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	t.Cleanup(rt.Close)
	return svr.Handler(), rt
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v\n%s", v, err, rec.Body.String())
	}
	return v
}

func TestIndexAndGames(t *testing.T) {
	h, _ := newTestServer(t)
	if rec := do(t, h, http.MethodGet, "/", nil); rec.Code != http.StatusOK {
		t.Fatalf("index status %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/v1/games", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("games status %d", rec.Code)
	}
	games := decode[[]map[string]any](t, rec)
	if len(games) != 3 {
		t.Fatalf("want 3 games, got %d", len(games))
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}

	names := decode[[]string](t, do(t, h, http.MethodGet, "/v1/rules", nil))
	if !strings.Contains(strings.Join(names, ","), "three_color") {
		t.Fatalf("game rules should be registered: %v", names)
	}
}

func TestSimulateAndPlace(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/v1/simulate", map[string]any{"field": twoChain, "track": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate status %d: %s", rec.Code, rec.Body.String())
	}
	sr := decode[dto.SimulateResult](t, rec)
	if sr.Result.Chains != 2 || sr.Result.Score != 360 || !sr.AllClear || len(sr.Track) != 4 {
		t.Fatalf("unexpected simulate result %+v", sr)
	}

	rec = do(t, h, http.MethodPost, "/v1/simulate", map[string]any{"field": twoChain, "rules": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown rules want 400, got %d", rec.Code)
	}
	eb := decode[httperr.Body](t, rec)
	if eb.Level != "warn" || eb.Error == "" {
		t.Fatalf("unexpected error body %+v", eb)
	}

	rec = do(t, h, http.MethodPost, "/v1/place", map[string]any{"field": "RR....", "pair": "RB", "x": 3, "r": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("place status %d: %s", rec.Code, rec.Body.String())
	}
	pr := decode[dto.PlaceResult](t, rec)
	if pr.AxisY != 1 || pr.ChildY != 2 || pr.Split || pr.Result.Chains != 0 {
		t.Fatalf("unexpected place result %+v", pr)
	}

	rec = do(t, h, http.MethodPost, "/v1/place", map[string]any{"field": "", "pair": "RB", "x": 1, "r": 3})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid decision want 400, got %d", rec.Code)
	}
}

func TestPlayContinues(t *testing.T) {
	h, rt := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/play?gid=1001&turns=5&log=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("play status %d: %s", rec.Code, rec.Body.String())
	}
	first := decode[dto.PlayResult](t, rec)
	if first.Turns != 5 || len(first.Log) != 5 || first.Snapshot == "" {
		t.Fatalf("unexpected play result turns=%d log=%d", first.Turns, len(first.Log))
	}

	rec = do(t, h, http.MethodPost, "/v1/play", map[string]any{"gid": 1001, "turns": 3, "log": true, "snapshot": first.Snapshot})
	if rec.Code != http.StatusOK {
		t.Fatalf("continue status %d: %s", rec.Code, rec.Body.String())
	}
	next := decode[dto.PlayResult](t, rec)
	if len(next.Log) != 3 || next.Log[0].Turn != 6 {
		t.Fatalf("continuation should start at turn 6: %+v", next.Log)
	}

	if rec := do(t, h, http.MethodGet, "/v1/play?gid=4242", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown gid want 400, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/v1/play", map[string]any{"gid": 1001, "snapshot": "!!"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad snapshot want 400, got %d", rec.Code)
	}

	type metrics struct {
		PoolSize int                           `json:"pool_size"`
		Pools    []chainlab.MachinePoolMetrics `json:"pools"`
	}
	m := decode[metrics](t, do(t, h, http.MethodGet, "/v1/metrics", nil))
	if m.PoolSize != 2 || len(m.Pools) != len(rt.IDs()) {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestSimReproducible(t *testing.T) {
	h, _ := newTestServer(t)
	type simResp struct {
		Seed  int64         `json:"seed"`
		Stats *stats.Report `json:"stats"`
	}
	path := "/v1/sim?gid=1002&games=6&workers=2&seed=7"
	a := decode[simResp](t, do(t, h, http.MethodGet, path, nil))
	b := decode[simResp](t, do(t, h, http.MethodPost, "/v1/sim", map[string]any{"gid": 1002, "games": 6, "workers": 2, "seed": 7}))
	if a.Seed != 7 || a.Stats == nil || b.Stats == nil {
		t.Fatalf("missing stats: %+v %+v", a, b)
	}
	if a.Stats.Summary.Games != 6 || a.Stats.Summary.TotalScore != b.Stats.Summary.TotalScore {
		t.Fatalf("same seed should give same totals: %d vs %d", a.Stats.Summary.TotalScore, b.Stats.Summary.TotalScore)
	}

	if rec := do(t, h, http.MethodGet, "/v1/sim?games=5", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing gid want 400, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPut, "/v1/sim", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PUT want 405, got %d", rec.Code)
	}
}

func TestDevReplay(t *testing.T) {
	h, _ := newTestServer(t)
	first := decode[chainlab.DevSimReport](t, do(t, h, http.MethodPost, "/dev/sim", map[string]any{"game": "tsu", "games": 3, "seed": "11"}))
	if first.Before == "" || first.After == "" || first.Stat == nil {
		t.Fatalf("dev sim should carry snapshots: %+v", first)
	}
	again := decode[chainlab.DevSimReport](t, do(t, h, http.MethodPost, "/dev/sim", map[string]any{"gid": 1001, "games": 3, "seed": "99", "snap": first.Before}))
	if again.After != first.After || again.Stat.Summary.TotalScore != first.Stat.Summary.TotalScore {
		t.Fatalf("replay from snapshot should match")
	}

	rec := do(t, h, http.MethodPost, "/dev/games", map[string]any{"game": "1003", "games": 2, "seed": "5"})
	if rec.Code != http.StatusOK {
		t.Fatalf("dev games status %d: %s", rec.Code, rec.Body.String())
	}
	if g := decode[chainlab.DevGamesReport](t, rec); g.Games != 2 || len(g.Results) != 2 {
		t.Fatalf("unexpected dev games report %+v", g)
	}
	if rec := do(t, h, http.MethodPost, "/dev/sim", map[string]any{"game": "nope", "games": 1}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown game want 400, got %d", rec.Code)
	}
}
