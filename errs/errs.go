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

// Package errs 全專案共用的分級錯誤。
//
// 等級讓最上層決定怎麼處理：Fatal 表示狀態不可信 (機台淘汰、服務回 500)，
// Warn 是呼叫端的問題 (回 400、機台照常使用)，Log 只需要記錄。
package errs

import (
	"errors"
	"fmt"
	"strings"
)

type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

func (lv ErrLevel) String() string {
	switch lv {
	case Fatal:
		return "fatal"
	case Warn:
		return "warn"
	case Log:
		return "log"
	default:
		return ""
	}
}

// ErrLv 等級名稱；未知等級為空字串
func ErrLv(lv ErrLevel) string {
	return lv.String()
}

// E 統一的錯誤型別：Message 主訊息、Extra 附加上下文、Cause 下層錯誤
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

// Error 格式：errlv=<level> <message> | extra: <extra> (cause: <cause>)
func (e *E) Error() string {
	var sb strings.Builder
	sb.WriteString("errlv=")
	sb.WriteString(e.ErrLv.String())
	sb.WriteByte(' ')
	sb.WriteString(e.Message)
	if e.Extra != "" {
		sb.WriteString(" | extra: ")
		sb.WriteString(e.Extra)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, " (cause: %v)", e.Cause)
	}
	return sb.String()
}

func (e *E) Unwrap() error { return e.Cause }

func New(lv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: lv}
}

func NewFatal(msg string) *E { return New(Fatal, msg) }
func NewWarn(msg string) *E  { return New(Warn, msg) }
func NewLog(msg string) *E   { return New(Log, msg) }

func Fatalf(format string, a ...any) *E { return New(Fatal, fmt.Sprintf(format, a...)) }
func Warnf(format string, a ...any) *E  { return New(Warn, fmt.Sprintf(format, a...)) }
func Logf(format string, a ...any) *E   { return New(Log, fmt.Sprintf(format, a...)) }

// NewWithExtra 附加上下文，不影響主訊息
func NewWithExtra(lv ErrLevel, msg string, extra string) *E {
	return &E{Message: msg, Extra: extra, ErrLv: lv}
}

// Wrap 包裝下層錯誤並沿用它的等級：*E 保持原等級，其他錯誤 (標準庫、三方) 視為 Fatal。
// 可預期的情境請直接用 NewWarn / Warnf，或以 WrapAs 指定等級。
func Wrap(cause error, msg string) *E {
	return &E{Message: msg, Cause: cause, ErrLv: Level(cause)}
}

// WrapWithExtra 同 Wrap，附加上下文
func WrapWithExtra(cause error, msg string, extra string) *E {
	return &E{Message: msg, Extra: extra, Cause: cause, ErrLv: Level(cause)}
}

// WrapAs 以指定等級包裝 cause (例如把 context 逾時標為 Warn)，errors.Is 仍可命中 cause
func WrapAs(lv ErrLevel, cause error, msg string) *E {
	return &E{Message: msg, Cause: cause, ErrLv: lv}
}

// AsErr 錯誤鏈中第一個 *E
func AsErr(err error) (*E, bool) {
	var e *E
	ok := errors.As(err, &e)
	return e, ok
}

// Level 錯誤的等級：nil 為 None，鏈中沒有 *E 時為 Fatal
func Level(err error) ErrLevel {
	if err == nil {
		return None
	}
	if e, ok := AsErr(err); ok {
		return e.ErrLv
	}
	return Fatal
}

// IsFatal 狀態已不可信
func IsFatal(err error) bool {
	return Level(err) == Fatal
}
