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

// Package logger 服務端的 slog 組裝：依模式建立 handler，並可包成非阻塞的 AsyncHandler。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/chainlab/errs"
)

type LogMode uint8

const (
	ModeDev     LogMode = iota // text，stderr，Debug 以上
	ModeProd                   // JSON，stdout，Info 以上
	ModeSilence                // 全部丟棄
)

// ParseMode 命令列用："dev" / "prod" / "silence"，空字串為 dev
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "silent":
		return ModeSilence, nil
	default:
		return ModeDev, errs.Warnf("unknown log mode %q", s)
	}
}

func (m LogMode) String() string {
	switch m {
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	default:
		return "dev"
	}
}

// NewDefaultLogger 同步 logger
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode, nil))
}

// NewDefaultAsyncLogger 非同步 logger，緩衝 8192 筆
func NewDefaultAsyncLogger(mode LogMode) *slog.Logger {
	return slog.New(NewAsyncHandler(buildHandler(mode, nil), 8192))
}

// NewLogger 以呼叫端自行組裝的 handler 建立 logger；nil 時使用 dev 模式
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev, nil)
	}
	return slog.New(h)
}

// NewAsync 同 NewDefaultAsyncLogger，另外回傳 handler 供結束時 Close
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(buildHandler(mode, nil), buf)
	return slog.New(ah), ah
}

// NewWithWriter 指定輸出 (測試用)
func NewWithWriter(mode LogMode, w io.Writer) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

func buildHandler(mode LogMode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
