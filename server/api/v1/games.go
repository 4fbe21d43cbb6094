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

func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	sum, err := h.lab.Summary()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httperr.JSON(w, sum)
}

func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	httperr.JSON(w, dto.RulesNames())
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	type metricsResponse struct {
		PoolSize int    `json:"pool_size"`
		Closed   bool   `json:"closed"`
		Reason   string `json:"reason,omitempty"`
		Pools    any    `json:"pools"`
	}
	httperr.JSON(w, metricsResponse{
		PoolSize: h.rt.PoolSize(),
		Closed:   h.rt.Closed(),
		Reason:   h.rt.ClosedReason(),
		Pools:    h.rt.Metrics(),
	})
}
