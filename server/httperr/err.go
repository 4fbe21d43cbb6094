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

// Package httperr HTTP 邊界的錯誤處理：errs 等級對應 status code，並以 JSON 回應。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/chainlab/errs"
)

// StatusCode 錯誤對應的 status code。
//
//   - context 逾時 → 504，取消 → 408 (被 wrap 也可命中)
//   - errs.Warn    → 400 (請求內容問題)
//   - errs.Log     → 422
//   - 其餘         → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	switch errs.Level(err) {
	case errs.Warn:
		return http.StatusBadRequest
	case errs.Log:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Body 錯誤回應
type Body struct {
	Error string `json:"error"`
	Level string `json:"level"`
}

// Errs 依錯誤等級寫回 JSON 錯誤；err 為 nil 時不寫任何東西
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	body := Body{Error: err.Error(), Level: errs.ErrLv(errs.Level(err))}
	writeJSON(w, StatusCode(err), body)
}

// JSON 寫回 200 與 JSON 內容
func JSON(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

// MethodNotAllowed 405
func MethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, Body{Error: "method not allowed", Level: errs.ErrLv(errs.Warn)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Log 只記錄伺服器端需要關注的錯誤：逾時類為 Warn，5xx 為 Error，其他 (請求錯誤) 不記錄
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
