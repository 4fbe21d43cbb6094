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

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/zintix-labs/chainlab/errs"
	"github.com/zintix-labs/chainlab/server/httperr"
)

// Recover 攔下 handler 的 panic：記錄 stack 並回應 500 JSON。
// http.ErrAbortHandler 照原樣往上拋。
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if log != nil {
					log.Error("http.panic",
						slog.String("req_id", ReqID(r)),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
				httperr.Errs(w, errs.Fatalf("internal error: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
