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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/demo"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/sdk/perf"
	"github.com/zintix-labs/chainlab/spec"
	"github.com/zintix-labs/chainlab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	id      spec.GID
	games   int
	workers int
	seed    int64
	format  string
	out     string
	cfgDir  string
	pprof   string
	quiet   bool
}

type gidFlag struct{ p *spec.GID }

func (f gidFlag) String() string {
	if f.p == nil {
		return "0"
	}
	return fmt.Sprint(uint(*f.p))
}

func (f gidFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return err
	}
	*f.p = spec.GID(uint(u))
	return nil
}

func bindFlags() *config {
	cfg := new(config)
	flag.Var(gidFlag{&cfg.id}, "game", "target game id")
	flag.IntVar(&cfg.games, "games", 10000, "number of games")
	flag.IntVar(&cfg.workers, "workers", 1, "number of workers")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed (< 0: random)")
	flag.StringVar(&cfg.format, "format", "table", "report format: table|json|yaml")
	flag.StringVar(&cfg.out, "o", "", "write report to file instead of stdout")
	flag.StringVar(&cfg.cfgDir, "cfg", "", "extra config dir (*.yaml, *.json)")
	flag.StringVar(&cfg.pprof, "p", "", "pprof: '', cpu, heap, allocs")
	flag.BoolVar(&cfg.quiet, "q", false, "hide progress bar")
	flag.Parse()
	return cfg
}

func (cfg *config) valid() error {
	if cfg.id == 0 {
		return errs.NewWarn("-game is required")
	}
	if cfg.games < 1 {
		return errs.NewWarn("-games must be > 0")
	}
	if cfg.workers < 1 {
		return errs.NewWarn("-workers must be > 0")
	}
	if stats.RenderByName(cfg.format) == nil {
		return errs.Warnf("unknown format %q", cfg.format)
	}
	if !perf.Valid(cfg.pprof) {
		return errs.Warnf("unknown pprof mode %q", cfg.pprof)
	}
	if cfg.seed < 0 {
		seed, err := chainlab.RandomSeed()
		if err != nil {
			return err
		}
		cfg.seed = seed
	}
	return nil
}

func execute(cfg *config) error {
	if err := cfg.valid(); err != nil {
		return err
	}
	lab, err := demo.NewLab(cfg.cfgDir)
	if err != nil {
		return err
	}
	ent, ok := lab.EntryByID(cfg.id)
	if !ok {
		return errs.Warnf("game %d not found", cfg.id)
	}
	sim, err := lab.NewSimulatorWithSeed(cfg.id, cfg.seed)
	if err != nil {
		return err
	}

	green, reset := "\033[1;32m", "\033[0m"
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%s[GAME:%s] [GAMES:%d] [WORKERS:%d] [SEED:%d]%s\n",
		green, ent.Name, cfg.games, cfg.workers, cfg.seed, reset)

	var rep *stats.Report
	var used time.Duration
	if cfg.workers == 1 {
		rep, used, err = sim.Sim(cfg.games, !cfg.quiet)
	} else {
		rep, used, err = sim.SimMP(cfg.games, cfg.workers, !cfg.quiet)
	}
	if err != nil {
		return err
	}
	if cfg.out == "" && (cfg.format == "table" || cfg.format == "") {
		rep.StdOut(used)
		return nil
	}

	var w io.Writer = os.Stdout
	if cfg.out != "" {
		f, err := os.Create(cfg.out)
		if err != nil {
			return errs.Wrap(err, "create report file")
		}
		defer f.Close()
		w = f
	}
	return rep.WriteWith(w, stats.RenderByName(cfg.format))
}
