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

// Command run 在終端機跑模擬統計。
//
//	go run ./cmd/run -game 1001 -games 100000 -workers 8
//	go run ./cmd/run -game 1002 -seed 42 -format yaml -o report.yaml
//	go run ./cmd/run -game 1001 -p cpu
package main

import (
	"log"

	"github.com/zintix-labs/chainlab/sdk/perf"
)

func main() {
	cfg := bindFlags()
	if err := perf.Run(cfg.pprof, "", func() error { return execute(cfg) }); err != nil {
		log.Fatal(err)
	}
}
