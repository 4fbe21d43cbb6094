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
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// 寫入時加鎖，背景 goroutine 與測試讀取不衝突
type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuf) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func TestParseMode(t *testing.T) {
	cases := map[string]LogMode{"": ModeDev, "dev": ModeDev, "PROD": ModeProd, "silence": ModeSilence}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("loud"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	out := &lockedBuf{}
	ah := NewAsyncHandler(slog.NewTextHandler(out, nil), 64)
	log := slog.New(ah).With(slog.String("svc", "chainlab"))
	for i := 0; i < 10; i++ {
		log.Info("played", slog.Int("i", i))
	}
	ah.Close()
	got := out.String()
	if n := strings.Count(got, "msg=played"); n != 10 {
		t.Fatalf("want 10 lines, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "svc=chainlab") {
		t.Fatalf("attrs lost: %s", got)
	}

	log.Info("late")
	if ah.Dropped() != 1 {
		t.Fatalf("record after Close should be dropped, dropped=%d", ah.Dropped())
	}
	ah.Close()
}

func TestNewWithWriterJSON(t *testing.T) {
	var b bytes.Buffer
	NewWithWriter(ModeProd, &b).Debug("hidden")
	NewWithWriter(ModeProd, &b).Info("shown")
	if strings.Contains(b.String(), "hidden") || !strings.Contains(b.String(), `"msg":"shown"`) {
		t.Fatalf("unexpected output %s", b.String())
	}
}
