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
	"context"
	"net/http"

	"github.com/zintix-labs/chainlab/dto"
	"github.com/zintix-labs/chainlab/server/httperr"
)

// Play 由機台池取一台機台對局。回應帶 snapshot，下次 POST 帶回即可接續。
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodePlayRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	pr, err := req.Parse()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), playTimeout)
	defer cancel()

	gr, snap, err := h.rt.Play(ctx, req.GameId, pr)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := dto.NewPlayResult(gr, snap)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperr.JSON(w, res)
}
