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

package buf

// PlayRequest Machine 內部使用的對局請求 (已由 dto 解碼、檢查過)
type PlayRequest struct {
	Turns    int    // 本次最多放幾組；<= 0 表示到設定的上限
	Snapshot string // 非空時先還原到這個狀態再繼續；空字串開新局
	KeepLog  bool   // 是否保留每一手的結果
}
