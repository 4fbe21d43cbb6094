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
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// encoder gzip.Writer 與 zstd.Encoder 共同的介面
type encoder interface {
	io.Writer
	Reset(io.Writer)
	Flush() error
	Close() error
}

// codec 一種 Content-Encoding 與它的 writer pool
type codec struct {
	name string
	pool sync.Pool
}

func (c *codec) get(w io.Writer) encoder {
	enc := c.pool.Get().(encoder)
	enc.Reset(w)
	return enc
}

func (c *codec) put(enc encoder, discard bool) {
	// 沒有 body 的回應不能帶壓縮尾端
	if discard {
		enc.Reset(io.Discard)
	}
	_ = enc.Close()
	c.pool.Put(enc)
}

// 依偏好順序：zstd 優先
var codecs = []*codec{
	{name: "zstd", pool: sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}}},
	{name: "gzip", pool: sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
		return gw
	}}},
}

// pickCodec 依 Accept-Encoding 選擇；不支援時回傳 nil
func pickCodec(accept string) *codec {
	accept = strings.ToLower(accept)
	for _, c := range codecs {
		if strings.Contains(accept, c.name) {
			return c
		}
	}
	return nil
}

type compressWriter struct {
	http.ResponseWriter
	enc    encoder
	noBody bool
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	// 1xx / 204 / 304 沒有 body
	if code < 200 || code == http.StatusNoContent || code == http.StatusNotModified {
		cw.noBody = true
		cw.Header().Del("Content-Encoding")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if cw.noBody {
		return cw.ResponseWriter.Write(b)
	}
	h := cw.Header()
	h.Del("Content-Length")
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", http.DetectContentType(b))
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) Flush() {
	if !cw.noBody {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應。HEAD、連線升級與已編碼的回應不處理。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := pickCodec(r.Header.Get("Accept-Encoding"))
		if c == nil || r.Method == http.MethodHead || r.Header.Get("Upgrade") != "" ||
			w.Header().Get("Content-Encoding") != "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", c.name)
		w.Header().Add("Vary", "Accept-Encoding")

		cw := &compressWriter{ResponseWriter: w, enc: c.get(w)}
		defer func() { c.put(cw.enc, cw.noBody) }()
		next.ServeHTTP(cw, r)
	})
}
