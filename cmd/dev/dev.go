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

// Command dev 可重現的對局與存檔工具，輸出 JSON。
//
//	go run ./cmd/dev -game 1001 -seed 42 -games 3             逐局結果 (含 before/after 快照)
//	go run ./cmd/dev -game 1001 -snap <before> -games 3       由快照重播
//	go run ./cmd/dev -game 1001 -seed 42 -sim 1000            統計
//	go run ./cmd/dev -game 1001 -seed 42 -turns 20 -save m.bin
//	go run ./cmd/dev -game 1001 -load m.bin -turns 10         讀檔後接著下
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/demo"
	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/buf"
	"github.com/zintix-labs/chainlab/spec"
)

type config struct {
	id     uint
	seed   int64
	games  int
	sim    int
	snap   string
	turns  int
	save   string
	load   string
	cfgDir string
}

func main() {
	cfg := new(config)
	flag.UintVar(&cfg.id, "game", 0, "target game id")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed (< 0: random)")
	flag.IntVar(&cfg.games, "games", 1, "games to play (with per-turn log)")
	flag.IntVar(&cfg.sim, "sim", 0, "games to simulate (report only); overrides -games")
	flag.StringVar(&cfg.snap, "snap", "", "restore this snapshot first")
	flag.IntVar(&cfg.turns, "turns", 0, "with -save/-load: turns to play on a single machine")
	flag.StringVar(&cfg.save, "save", "", "save machine state to file after playing")
	flag.StringVar(&cfg.load, "load", "", "load machine state from file before playing")
	flag.StringVar(&cfg.cfgDir, "cfg", "", "extra config dir")
	flag.Parse()

	out, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config) (any, error) {
	if cfg.id == 0 {
		return nil, errs.NewWarn("-game is required")
	}
	gid := spec.GID(cfg.id)
	if cfg.seed < 0 {
		seed, err := chainlab.RandomSeed()
		if err != nil {
			return nil, err
		}
		cfg.seed = seed
	}
	lab, err := demo.NewLab(cfg.cfgDir)
	if err != nil {
		return nil, err
	}
	if cfg.save != "" || cfg.load != "" {
		return playMachine(lab, gid, cfg)
	}

	ds, err := lab.NewDevSimulator(gid, cfg.seed)
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.sim > 0 && cfg.snap != "":
		return ds.RestoreSim(cfg.snap, cfg.sim)
	case cfg.sim > 0:
		return ds.Sim(cfg.sim)
	case cfg.snap != "":
		return ds.RestoreGames(cfg.snap, cfg.games)
	default:
		return ds.Games(cfg.games)
	}
}

// playMachine 單台機台：選擇性讀檔、下 turns 組、選擇性存檔
func playMachine(lab *chainlab.Lab, gid spec.GID, cfg *config) (any, error) {
	m, err := lab.NewMachineWithSeed(gid, cfg.seed, true)
	if err != nil {
		return nil, err
	}
	req := &buf.PlayRequest{Turns: cfg.turns, KeepLog: true}
	if cfg.load != "" {
		f, err := os.Open(cfg.load)
		if err != nil {
			return nil, errs.Wrap(err, "open save file")
		}
		err = m.LoadFrom(bufio.NewReader(f))
		f.Close()
		if err != nil {
			return nil, err
		}
		// 讀檔後接著下，不開新局
		if req.Snapshot, err = m.SnapshotString(); err != nil {
			return nil, err
		}
	}
	gr, after, err := m.Play(req)
	if err != nil {
		return nil, err
	}
	if cfg.save != "" {
		f, err := os.Create(cfg.save)
		if err != nil {
			return nil, errs.Wrap(err, "create save file")
		}
		if err := m.SaveTo(f); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, errs.Wrap(err, "close save file")
		}
	}
	return dto.NewPlayResult(gr, after)
}
