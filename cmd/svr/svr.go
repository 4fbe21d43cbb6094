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

// Command svr 啟動 HTTP 服務 (v1 API 與 dev API)。
//
//	go run ./cmd/svr -addr :5808 -log prod -pool 4 -cfg ./games
package main

import (
	"flag"
	"log"
	"time"

	"github.com/zintix-labs/chainlab/demo"
	"github.com/zintix-labs/chainlab/server"
	"github.com/zintix-labs/chainlab/server/logger"
	"github.com/zintix-labs/chainlab/server/netsvr"
)

type config struct {
	addr    string
	logMode string
	pool    int
	cfgDir  string
	write   time.Duration
}

func main() {
	cfg := new(config)
	flag.StringVar(&cfg.addr, "addr", ":5808", "listen address")
	flag.StringVar(&cfg.logMode, "log", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.pool, "pool", 3, "number of machines per game")
	flag.StringVar(&cfg.cfgDir, "cfg", "", "extra config dir (*.yaml, *.json)")
	flag.DurationVar(&cfg.write, "write-timeout", 60*time.Second, "http write timeout (long simulations)")
	flag.Parse()

	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		log.Fatal(err)
	}
	sCfg, ah, err := demo.NewServerConfig(mode, cfg.pool, cfg.cfgDir)
	if err != nil {
		log.Fatal(err)
	}
	defer ah.Close()

	svr := netsvr.NewChiServer(cfg.addr, netsvr.WithTimeouts(10*time.Second, cfg.write, 120*time.Second))
	if err := server.RunWithSvr(sCfg, svr); err != nil {
		ah.Close()
		log.Fatal(err)
	}
}
