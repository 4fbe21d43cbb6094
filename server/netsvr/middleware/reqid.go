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
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader 回應中帶回的請求編號
const RequestIDHeader = "X-Request-Id"

// RequestID 產生 (或沿用請求帶入的) 請求編號，寫進 context 並回傳在 header
func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimid.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	}))
}

// ReqID 目前請求的編號，沒有時為空字串
func ReqID(r *http.Request) string {
	return chimid.GetReqID(r.Context())
}
