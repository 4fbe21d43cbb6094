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

package v1

import (
	"net/http"

	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/server/httperr"
)

// Simulate 盤面直接跑連鎖，不經過機台
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeSimulateRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	f, rules, err := req.Parse()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperr.JSON(w, dto.Simulate(f, rules, req.Track, req.Steps))
}

// Place 放下一組後模擬，回傳落點、是否分離與所需 frame
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodePlaceRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := req.Parse()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := dto.Place(p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperr.JSON(w, res)
}
