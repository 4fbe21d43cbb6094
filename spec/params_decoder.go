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

package spec

import (
	"bytes"

	"github.com/zintix-labs/chainlab/errs"
	"gopkg.in/yaml.v3"
)

// DecodeParams 把設定檔中自由格式的 map 解碼成呼叫端定義的結構。
// 以 YAML 來回轉換並開啟 KnownFields，拼錯或多餘的欄位都會報錯。
func DecodeParams[T any](raw map[string]any, out *T) error {
	if len(raw) == 0 {
		return nil
	}
	bs, err := yaml.Marshal(raw)
	if err != nil {
		return errs.Wrap(err, "spec.params: marshal failed")
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err = dec.Decode(out); err != nil {
		return errs.Wrap(err, "spec.params: decode failed")
	}
	return nil
}
