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

// Package perf 命令列工具用的 pprof 包裝：執行一段工作並寫出 profile。
//
//	go run ./cmd/run -game 1001 -p cpu
//	go tool pprof build/profiling/cpu.pprof
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/chainlab/errs"
)

// DefaultDir profile 預設輸出目錄
const DefaultDir = "build/profiling"

// Modes 支援的模式；空字串表示不做 profiling
var Modes = []string{"", "cpu", "heap", "allocs"}

// Valid mode 是否支援
func Valid(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Run 依 mode 執行 exe 並把 profile 寫到 dir/<mode>.pprof (dir 為空時用 DefaultDir)。
// cpu 涵蓋整段執行；heap 與 allocs 在 exe 結束後拍一次。exe 的錯誤優先回傳。
func Run(mode, dir string, exe func() error) error {
	if !Valid(mode) {
		return errs.Warnf("unknown pprof mode %q", mode)
	}
	if mode == "" {
		return exe()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrap(err, "create profiling dir")
	}
	f, err := os.Create(filepath.Join(dir, mode+".pprof"))
	if err != nil {
		return errs.Wrap(err, "create profile file")
	}
	defer f.Close()

	switch mode {
	case "cpu":
		if err := pprof.StartCPUProfile(f); err != nil {
			return errs.Wrap(err, "start cpu profile")
		}
		err := exe()
		pprof.StopCPUProfile()
		return err
	case "heap":
		if err := exe(); err != nil {
			return err
		}
		// 先 GC，快照才是目前存活的物件
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return errs.Wrap(err, "write heap profile")
		}
	case "allocs":
		if err := exe(); err != nil {
			return err
		}
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			return errs.Wrap(err, "write allocs profile")
		}
	}
	return nil
}
