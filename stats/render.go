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

package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Render 報表輸出格式
type Render interface {
	Write(w io.Writer, r *Report) error
}

// RenderFunc 讓普通函式滿足 Render
type RenderFunc func(w io.Writer, r *Report) error

func (f RenderFunc) Write(w io.Writer, r *Report) error { return f(w, r) }

var renders = map[string]Render{
	"json":  RenderFunc(writeJSON),
	"yaml":  RenderFunc(writeYAML),
	"yml":   RenderFunc(writeYAML),
	"table": RenderFunc(writeTable),
	"":      RenderFunc(writeTable),
}

// RenderByName json | yaml | table；未知名稱回傳 nil
func RenderByName(name string) Render {
	return renders[name]
}

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeTable(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, r.Table())
	return err
}

// writeYAML 純數值的陣列 (例如各連鎖數的次數) 輸出成一行 [a, b, c]
func writeYAML(w io.Writer, r *Report) error {
	var doc yaml.Node
	if err := doc.Encode(r); err != nil {
		return err
	}
	flattenLeafSeqs(&doc)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// flattenLeafSeqs 回傳 n 本身是否為 sequence；不含 sequence 的 sequence 改為 flow style
func flattenLeafSeqs(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	nested := false
	for _, c := range n.Content {
		if flattenLeafSeqs(c) {
			nested = true
		}
	}
	if n.Kind != yaml.SequenceNode {
		return false
	}
	if !nested {
		n.Style = yaml.FlowStyle
	}
	return true
}
