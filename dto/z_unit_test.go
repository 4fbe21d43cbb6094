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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/sdk/field"
	"github.com/zintix-labs/chainlab/spec"
)

const twoChain = "B.....\nRB....\nRB....\nRRB..."

func post(t *testing.T, v any) *http.Request {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
}

func TestDecodePlayRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/play?gid=1001&turns=12&log=true", nil)
	req, err := DecodePlayRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.GameId != 1001 || req.Turns != 12 || !req.Log {
		t.Fatalf("unexpected request: %+v", req)
	}
	br, err := req.Parse()
	if err != nil || br.Turns != 12 || !br.KeepLog || br.Snapshot != "" {
		t.Fatalf("parse: %+v %v", br, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/play?turns=abc", nil)
	if _, err := DecodePlayRequest(bad); errs.Level(err) != errs.Warn {
		t.Fatalf("bad turns should be warn, got %v", err)
	}
}

func TestDecodePlayRequestPOST(t *testing.T) {
	req, err := DecodePlayRequest(post(t, map[string]any{"gid": 7, "turns": 3, "snapshot": "abc"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.GameId != 7 || req.Snapshot != "abc" {
		t.Fatalf("unexpected request: %+v", req)
	}
	req.Turns = MaxPlayTurns + 1
	if _, err := req.Parse(); err == nil {
		t.Fatalf("too many turns should fail")
	}
	if _, err := DecodePlayRequest(post(t, map[string]any{"gid": 7, "unknown": true})); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestDecodeSimRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/sim?gid=1002&games=500&workers=4&seed=9", nil)
	req, err := DecodeSimRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.GameId != 1002 || req.Games != 500 || req.Workers != 4 || req.Seed == nil || *req.Seed != 9 {
		t.Fatalf("unexpected request: %+v", req)
	}

	req, err = DecodeSimRequest(post(t, map[string]any{"gid": 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Games != DefaultSimRuns || req.Workers != 1 || req.Seed != nil {
		t.Fatalf("defaults not applied: %+v", req)
	}

	cases := []string{
		"/sim?games=10",
		"/sim?gid=1&workers=1000",
		"/sim?gid=1&games=-1",
		"/sim?gid=1&seed=x",
	}
	for _, u := range cases {
		if _, err := DecodeSimRequest(httptest.NewRequest(http.MethodGet, u, nil)); err == nil {
			t.Fatalf("%s: expected error", u)
		}
	}
}

func TestSimulate(t *testing.T) {
	req, err := DecodeSimulateRequest(post(t, map[string]any{"field": twoChain, "track": true, "steps": true}))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f, r, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := Simulate(f, r, req.Track, req.Steps)
	if out.Result.Chains != 2 || out.Result.Score != 360 || !out.AllClear || out.Field != "" {
		t.Fatalf("unexpected result %+v", out)
	}
	if strings.Join(out.Track, "|") != "2.....|12....|12....|112..." {
		t.Fatalf("track rows %v", out.Track)
	}
	if len(out.Steps) != 2 || out.Steps[1].Score != 320 {
		t.Fatalf("steps %+v", out.Steps)
	}
	plain := Simulate(f, r, false, false)
	if plain.Result != out.Result || plain.Track != nil || plain.Steps != nil {
		t.Fatalf("plain simulate differs: %+v", plain)
	}

	if _, _, err := (&SimulateRequest{Field: "RXB"}).Parse(); errs.Level(err) != errs.Warn {
		t.Fatalf("bad field should be warn, got %v", err)
	}
	if _, _, err := (&SimulateRequest{Field: "R", Rules: "nope"}).Parse(); err == nil {
		t.Fatalf("unknown rules should fail")
	}
	if _, err := DecodeSimulateRequest(httptest.NewRequest(http.MethodGet, "/", nil)); err == nil {
		t.Fatalf("GET simulate should fail")
	}
}

func TestRegisterRules(t *testing.T) {
	r := field.TsuRules()
	r.ChainBonus = []int{0, 100}
	if err := RegisterRules("Steep", r); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterRules("  ", r); err == nil {
		t.Fatalf("empty name should fail")
	}
	f, rr, err := (&SimulateRequest{Field: twoChain, Rules: "STEEP"}).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := Simulate(f, rr, false, false).Result.Score; got != 40+10*4*100 {
		t.Fatalf("custom rules score %d", got)
	}
	found := false
	for _, n := range RulesNames() {
		found = found || n == "steep"
	}
	if !found {
		t.Fatalf("registered name missing: %v", RulesNames())
	}
}

func TestPlace(t *testing.T) {
	req := &PlaceRequest{Field: "R.....\nR.....\nR.....", Pair: "RB", X: 1, R: 0}
	p, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Place(p)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if out.Result.Chains != 1 || out.Result.Score != 40 || out.Field != "B....." {
		t.Fatalf("unexpected result %+v", out)
	}
	if out.AxisY != 4 || out.ChildY != 5 || out.Split || out.Frames != 2*8+10 || out.Dead {
		t.Fatalf("unexpected placement %+v", out)
	}

	split, err := (&PlaceRequest{Field: "R.....", Pair: "GY", X: 1, R: 1}).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	so, _ := Place(split)
	if !so.Split || so.Result.Chains != 0 || so.Field != "G.....\nRY...." {
		t.Fatalf("unexpected split placement %+v", so)
	}

	bads := []PlaceRequest{
		{Field: "", Pair: "R", X: 1},
		{Field: "", Pair: "RBYY", X: 1},
		{Field: "", Pair: "RB", X: 6, R: 1},
		{Field: "", Pair: "R@", X: 1},
	}
	for i, b := range bads {
		if _, err := b.Parse(); err == nil {
			t.Fatalf("case %d should fail", i)
		}
	}
}

func TestNewPlayResult(t *testing.T) {
	gs := &spec.GameSetting{GameName: "tsu", GameID: 1001}
	gr := buf.NewGameResult(gs, true)
	gr.AppendTurn(&buf.TurnResult{
		Turn:     1,
		Pair:     field.Pair{Axis: field.Red, Child: field.Blue},
		Decision: field.Decision{X: 3, R: 1},
	})
	gr.AppendTurn(&buf.TurnResult{
		Turn:     2,
		Pair:     field.Pair{Axis: field.Green, Child: field.Green},
		Decision: field.Decision{X: 1, R: 0},
		Result:   field.Result{Chains: 2, Score: 360, Frames: 130},
		AllClear: true,
	})
	gr.End(false)

	out, err := NewPlayResult(gr, "snap")
	if err != nil {
		t.Fatalf("dto: %v", err)
	}
	if out.Turns != 2 || out.Score != 360 || out.MaxChain != 2 || out.AllClears != 1 || out.Snapshot != "snap" {
		t.Fatalf("unexpected dto %+v", out)
	}
	if len(out.ChainCollect) != 3 || out.ChainCollect[0] != 1 || out.ChainCollect[2] != 1 {
		t.Fatalf("chain collect %v", out.ChainCollect)
	}
	if len(out.Log) != 2 || out.Log[0].Pair != "RB" || out.Log[1].X != 1 || !out.Log[1].AllClear {
		t.Fatalf("log %+v", out.Log)
	}
	if _, err := NewPlayResult(nil, ""); err == nil {
		t.Fatalf("nil result should fail")
	}
}
