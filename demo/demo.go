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

// Package demo 以內建設定 (configs.FS) 加上選用的外部目錄組裝 Lab，給 cmd/ 共用。
package demo

import (
	"io/fs"
	"os"

	"github.com/zintix-labs/chainlab"
	"github.com/zintix-labs/chainlab/configs"
	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/logger"
	"github.com/zintix-labs/chainlab/server/svrcfg"
)

// NewLab 內建設定之外，dirs 內的 *.yaml / *.json 也會註冊 (編號與名稱不可重複)
func NewLab(dirs ...string) (*chainlab.Lab, error) {
	src := []fs.FS{configs.FS}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		st, err := os.Stat(d)
		if err != nil {
			return nil, errs.Wrap(err, "config dir")
		}
		if !st.IsDir() {
			return nil, errs.Fatalf("config dir %q is not a directory", d)
		}
		src = append(src, os.DirFS(d))
	}
	lab, err := chainlab.NewAuto(chainlab.Configs(src...))
	if err != nil {
		return nil, errs.Wrap(err, "new lab failed")
	}
	return lab, nil
}

// NewServerConfig 非同步 logger + NewLab；回傳的 AsyncHandler 由呼叫端在結束時 Close
func NewServerConfig(mode logger.LogMode, poolSize int, dirs ...string) (*svrcfg.SvrCfg, *logger.AsyncHandler, error) {
	lab, err := NewLab(dirs...)
	if err != nil {
		return nil, nil, err
	}
	log, ah := logger.NewAsync(4096, mode)
	return &svrcfg.SvrCfg{Log: log, PoolSize: poolSize, Lab: lab}, ah, nil
}
