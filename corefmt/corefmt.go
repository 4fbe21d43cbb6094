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

// Package corefmt 機台快照的傳輸格式。
//
// 快照先以 JSON 序列化、zstd 壓縮，再依傳輸需要轉成 Base64URL (HTTP/JSON) 或長度前綴的二進位框 (檔案)。
package corefmt

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/chainlab/errs"
)

// maxDecoded 解壓後的上限，避免不可信的輸入造成大量配置
const maxDecoded = 1 << 20

var (
	encOnce sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
)

func codec() (*zstd.Encoder, *zstd.Decoder) {
	encOnce.Do(func() {
		// nil writer/reader 只用於 EncodeAll/DecodeAll，皆可並行使用
		enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		dec, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecoded))
	})
	return enc, dec
}

// Compress zstd 壓縮
func Compress(raw []byte) []byte {
	e, _ := codec()
	return e.EncodeAll(raw, make([]byte, 0, len(raw)/2+16))
}

// Decompress Compress 的反向
func Decompress(b []byte) ([]byte, error) {
	_, d := codec()
	raw, err := d.DecodeAll(b, nil)
	if err != nil {
		return nil, errs.Warnf("zstd decode failed: %v", err)
	}
	return raw, nil
}

// Pack JSON -> zstd -> Base64URL
func Pack(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errs.Wrap(err, "snapshot marshal failed")
	}
	return EncodeBase64URL(Compress(raw)), nil
}

// Unpack Pack 的反向；輸入錯誤一律回傳 Warn
func Unpack(s string, v any) error {
	b, err := DecodeBase64URL(s)
	if err != nil {
		return err
	}
	raw, err := Decompress(b)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errs.Warnf("snapshot unmarshal failed: %v", err)
	}
	return nil
}

func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Warnf("decode base64url failed: %v", err)
	}
	return b, nil
}

// WriteBlobFrame 寫入 uvarint(len(payload)) || payload
func WriteBlobFrame(w io.Writer, payload []byte) error {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(payload)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(err, "write blob frame header failed")
	}
	if _, err := w.Write(payload); err != nil {
		return errs.Wrap(err, "write blob frame payload failed")
	}
	return nil
}

// ReadBlobFrame 讀取一個 WriteBlobFrame 寫入的框；maxBytes > 0 時限制長度
func ReadBlobFrame(r *bufio.Reader, maxBytes uint64) ([]byte, error) {
	ln, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, errs.Wrap(err, "read blob frame header failed")
	}
	if maxBytes > 0 && ln > maxBytes {
		return nil, errs.NewWarn("read blob frame failed: payload exceeds maxBytes")
	}
	b := make([]byte, ln)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errs.Wrap(err, "read blob frame payload failed")
	}
	return b, nil
}
