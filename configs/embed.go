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

// Package configs 內建的遊戲設定檔，平鋪在同一層，可直接交給 catalog 使用。
package configs

import (
	"embed"
)

// FS 內建設定檔 (YAML 與 JSON)
//
//go:embed *.yaml *.json
var FS embed.FS
