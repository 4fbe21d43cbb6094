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

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		err  error
		want ErrLevel
	}{
		{nil, None},
		{NewWarn("w"), Warn},
		{Fatalf("f %d", 1), Fatal},
		{NewLog("l"), Log},
		{io.EOF, Fatal},
		{Wrap(NewWarn("inner"), "outer"), Warn},
		{Wrap(io.ErrUnexpectedEOF, "read"), Fatal},
	}
	for i, c := range cases {
		if got := Level(c.err); got != c.want {
			t.Fatalf("case %d: level got %d want %d", i, got, c.want)
		}
	}
	if !IsFatal(io.EOF) || IsFatal(NewWarn("w")) || IsFatal(nil) {
		t.Fatalf("IsFatal mismatch")
	}
}

func TestErrorString(t *testing.T) {
	e := WrapWithExtra(io.EOF, "load", "file=a.yaml")
	msg := e.Error()
	for _, part := range []string{"errlv=fatal", "load", "extra: file=a.yaml", "cause: EOF"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("message %q missing %q", msg, part)
		}
	}
	if !errors.Is(e, io.EOF) {
		t.Fatalf("errors.Is should unwrap to cause")
	}
	if got, ok := AsErr(e); !ok || got.ErrLv != Fatal {
		t.Fatalf("AsErr failed")
	}
}

func TestWrapAs(t *testing.T) {
	e := WrapAs(Warn, io.EOF, "read")
	if Level(e) != Warn {
		t.Fatalf("level should be warn")
	}
	if !errors.Is(e, io.EOF) {
		t.Fatalf("cause should be kept")
	}
}

func TestLevelString(t *testing.T) {
	want := map[ErrLevel]string{None: "", Fatal: "fatal", Warn: "warn", Log: "log", ErrLevel(99): ""}
	for lv, s := range want {
		if ErrLv(lv) != s {
			t.Fatalf("ErrLv(%d) = %q want %q", lv, ErrLv(lv), s)
		}
	}
}
