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

package netsvr

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultAddr = ":5808"

// Option 調整 http.Server 設定
type Option func(*http.Server)

// WithTimeouts 讀寫逾時；模擬請求較久時需要放寬 write
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *http.Server) {
		s.ReadTimeout = read
		s.WriteTimeout = write
		s.IdleTimeout = idle
	}
}

// ChiAdapter 以 chi 實作 NetSvr；handler 與 middleware 都是 net/http 介面
type ChiAdapter struct {
	router chi.Router
	server *http.Server
	addr   string
}

// NewChiServer 監聽 addr；預設 read 10s、write 60s、idle 120s
func NewChiServer(addr string, opts ...Option) *ChiAdapter {
	if addr == "" {
		addr = defaultAddr
	}
	cr := chi.NewRouter()
	srv := &http.Server{
		Addr:              addr,
		Handler:           cr,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return &ChiAdapter{router: cr, server: srv, addr: addr}
}

// NewChiServerDefault 監聽 :5808
func NewChiServerDefault() *ChiAdapter {
	return NewChiServer(defaultAddr)
}

// Ready 由 NewChiServer 建立的完整 adapter (Group 內的子 adapter 不算)
func (c *ChiAdapter) Ready() bool {
	return c != nil && c.router != nil && c.server != nil &&
		strings.Contains(c.addr, ":") && c.server.Handler == c.router
}

// Run 阻塞到 server 停止；Shutdown 造成的停止不算錯誤
func (c *ChiAdapter) Run() error {
	if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (c *ChiAdapter) Shutdown(ctx context.Context) error {
	return c.server.Shutdown(ctx)
}

func (c *ChiAdapter) Address() string {
	return c.addr
}

// Handler 完整的路由樹 (httptest 用)
func (c *ChiAdapter) Handler() http.Handler {
	return c.router
}

func (c *ChiAdapter) Use(mw func(http.Handler) http.Handler) {
	c.router.Use(mw)
}

func (c *ChiAdapter) Get(path string, h http.HandlerFunc) {
	c.router.Get(path, h)
}

func (c *ChiAdapter) Post(path string, h http.HandlerFunc) {
	c.router.Post(path, h)
}

func (c *ChiAdapter) Put(path string, h http.HandlerFunc) {
	c.router.Put(path, h)
}

func (c *ChiAdapter) Delete(path string, h http.HandlerFunc) {
	c.router.Delete(path, h)
}

func (c *ChiAdapter) Method(methods []string, path string, h http.HandlerFunc) {
	for _, m := range methods {
		c.router.Method(m, path, h)
	}
}

func (c *ChiAdapter) Group(path string, fn func(NetRouter)) {
	c.router.Route(path, func(r chi.Router) {
		fn(&ChiAdapter{router: r})
	})
}
