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

// Package netsvr HTTP 服務的路由與啟停抽象，預設實作為 chi。
package netsvr

import (
	"net/http"

	"github.com/zintix-labs/chainlab/server/app"
)

// NetSvr 路由 + 啟停；交給 app.App 管理生命週期，只在組裝層持有
type NetSvr interface {
	NetRouter
	app.Component
	Address() string
}

// NetRouter 只有路由能力，給 api 子模組註冊 handler 用，拿不到 Run/Shutdown
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)
	// Method 同一路徑註冊多個方法，例如 GET 與 POST 共用 handler
	Method(methods []string, path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
