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

package app

import "context"

// Component 長時間運行的元件 (HTTP server、背景 worker ...)。
//   - Run 阻塞到元件停止；正常停止回傳 nil。
//   - Shutdown 要求停止，需尊重 ctx 的期限。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// StopFunc 沒有 Run 的資源 (機台池、非同步 logger) 在關閉階段的清理
type StopFunc func(ctx context.Context) error
