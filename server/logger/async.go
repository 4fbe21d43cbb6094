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

package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// AsyncHandler 把任何 slog.Handler 變成非阻塞：Handle 只做入列，由背景 goroutine 寫出。
// 佇列滿或已 Close 時直接丟棄並計數，不把寫出延遲帶回請求路徑。
// WithAttrs / WithGroup 衍生的 handler 共用同一條佇列。
type AsyncHandler struct {
	next slog.Handler
	q    *queue
}

type record struct {
	ctx context.Context
	rec slog.Record
	h   slog.Handler
}

type queue struct {
	ch      chan record
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

// NewAsyncHandler buf <= 0 時使用 1024
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev, nil)
	}
	if buf <= 0 {
		buf = 1024
	}
	q := &queue{
		ch:   make(chan record, buf),
		stop: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.loop()
	return &AsyncHandler{next: next, q: q}
}

func (q *queue) loop() {
	defer q.wg.Done()
	for {
		select {
		case it := <-q.ch:
			_ = it.h.Handle(it.ctx, it.rec)
		case <-q.stop:
			// 收到停止後把剩下的寫完
			for {
				select {
				case it := <-q.ch:
					_ = it.h.Handle(it.ctx, it.rec)
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.q != nil && h.next != nil
}

// Dropped 被丟棄的筆數
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.q.dropped.Load()
}

// Close 停止接收並等待佇列寫完；可重複呼叫
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.q.once.Do(func() { close(h.q.stop) })
	h.q.wg.Wait()
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.q.stop:
		h.q.dropped.Add(1)
		return nil
	default:
	}
	// Record 跨 goroutine 前要 Clone
	select {
	case h.q.ch <- record{ctx: ctx, rec: r.Clone(), h: h.next}:
	default:
		h.q.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), q: h.q}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), q: h.q}
}
