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

// Package stats 模擬結果的統計報表：分數分布、連鎖分布與各種比例的信賴區間。
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/chainlab/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang language.Tag = language.English

// Confidence 報表中所有信賴區間的信賴水準
const Confidence = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// Report 模擬統計報表
type Report struct {
	Summary *SummaryReport `json:"Summary"`
	Chain   *ChainReport   `json:"Chain"`
	Dist    *DistReport    `json:"Dist"`
	Scores  []float64      `json:"-" yaml:"-"` // 每局總分，Done 時使用
	isDone  bool
}

type SummaryReport struct {
	GameName     string   `json:"GameName"`
	GameId       spec.GID `json:"GameId"`
	Games        int      `json:"Games"`
	Turns        int      `json:"Turns"`
	TotalScore   int      `json:"TotalScore"`
	TotalFrames  int      `json:"TotalFrames"`
	MeanScore    float64  `json:"MeanScore"`
	ScoreStd     float64  `json:"ScoreStd"`
	ScoreCI      CI       `json:"ScoreCI"`
	ScoreCv      float64  `json:"ScoreCv"`
	MeanTurns    float64  `json:"MeanTurns"`
	Fires        int      `json:"Fires"` // 引發連鎖的手數
	FireRate     float64  `json:"FireRate"`
	AllClears    int      `json:"AllClears"`
	AllClearRate float64  `json:"AllClearRate"` // 以手數為分母
	AllClearCI   CI       `json:"AllClearCI"`
	GameOvers    int      `json:"GameOvers"`
	GameOverRate float64  `json:"GameOverRate"` // 以局數為分母
	GameOverCI   CI       `json:"GameOverCI"`
	MaxChain     int      `json:"MaxChain"`
	SumMaxChain  int      `json:"SumMaxChain"`
	MeanMaxChain float64  `json:"MeanMaxChain"`
}

// ChainReport 連鎖數分布
type ChainReport struct {
	ChainCollect    []int     `json:"ChainCollect"` // [n] 連鎖數為 n 的手數，0 為未引發
	ChainDist       []float64 `json:"ChainDist"`
	MaxChainCollect []int     `json:"MaxChainCollect"` // [n] 單局最大連鎖為 n 的局數
	MaxChainDist    []float64 `json:"MaxChainDist"`
}

// DistReport 單局總分分布
type DistReport struct {
	ScoreBucket  []string  `json:"ScoreBucket"`
	ScoreCollect []int     `json:"ScoreCollect"`
	ScoreDist    []float64 `json:"ScoreDist"`
	Median       float64   `json:"Median"`
	MedianCI     CI        `json:"MedianCI"`
	P90          float64   `json:"P90"`
	P90CI        CI        `json:"P90CI"`
}

// NewReport 建立空報表；chainLen 為連鎖分布的格數
func NewReport(name string, id spec.GID, chainLen int) *Report {
	return &Report{
		Summary: &SummaryReport{GameName: name, GameId: id},
		Chain: &ChainReport{
			ChainCollect:    make([]int, chainLen),
			ChainDist:       make([]float64, chainLen),
			MaxChainCollect: make([]int, chainLen),
			MaxChainDist:    make([]float64, chainLen),
		},
		Dist: &DistReport{
			ScoreBucket:  Buckets.Labels(),
			ScoreCollect: make([]int, Buckets.Len()),
			ScoreDist:    make([]float64, Buckets.Len()),
		},
	}
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 由累積的計數與每局分數算出所有衍生值；重複呼叫無作用
func (r *Report) Done() {
	if r.isDone {
		return
	}
	s := r.Summary
	if n := len(r.Scores); n > 0 {
		mean, std := stat.MeanStdDev(r.Scores, nil)
		if n < 2 {
			std = 0
		}
		s.MeanScore = mean
		s.ScoreStd = std
		s.ScoreCI = meanCI(mean, std, n, Confidence)
		if mean > 0 {
			s.ScoreCv = std / mean
		}

		sorted := append([]float64(nil), r.Scores...)
		sort.Float64s(sorted)
		d := r.Dist
		d.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		d.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
		d.MedianCI = quantileCI(sorted, 0.5, Confidence)
		d.P90CI = quantileCI(sorted, 0.9, Confidence)
	}
	if s.Games > 0 {
		s.MeanTurns = float64(s.Turns) / float64(s.Games)
		s.MeanMaxChain = float64(s.SumMaxChain) / float64(s.Games)
		s.GameOverRate, s.GameOverCI = proportionCICP(s.GameOvers, s.Games, Confidence)
	}
	if s.Turns > 0 {
		s.FireRate = float64(s.Fires) / float64(s.Turns)
		s.AllClearRate, s.AllClearCI = proportionCICP(s.AllClears, s.Turns, Confidence)
	}
	normalize(r.Chain.ChainCollect, r.Chain.ChainDist, s.Turns)
	normalize(r.Chain.MaxChainCollect, r.Chain.MaxChainDist, s.Games)
	normalize(r.Dist.ScoreCollect, r.Dist.ScoreDist, s.Games)
	r.isDone = true
}

// IsDone 是否已經 Done
func (r *Report) IsDone() bool {
	return r.isDone
}

func normalize(collect []int, dist []float64, total int) {
	if total == 0 {
		return
	}
	for i, c := range collect {
		dist[i] = float64(c) / float64(total)
	}
}

// WriteWith 以指定格式輸出 (會先 Done)
func (r *Report) WriteWith(w io.Writer, rr Render) error {
	r.Done()
	return rr.Write(w, r)
}

// StdOut 在終端機印出用時與摘要表
func (r *Report) StdOut(used time.Duration) {
	fmt.Print(formatDuration(used, r.Summary.Games))
	fmt.Println(r.Table())
}

// Table 摘要表 (會先 Done)
func (r *Report) Table() string {
	r.Done()
	keys, msg := r.fmtBasic()
	return fmtTable(r.Summary.GameName, keys, msg)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, games int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	gps := int(float64(games) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\ngps : %d games/sec\n", sec, gps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\ngps : %d games/sec\n", m, s, gps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\ngps : %d games/sec\n", h, m, s, gps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	basic := map[string]string{
		"Game Name":      s.GameName,
		"Game ID":        fmt.Sprintf("%d", s.GameId),
		"Games":          p.Sprintf("%d", s.Games),
		"Turns":          p.Sprintf("%d", s.Turns),
		"Mean Score":     p.Sprintf("%.1f", s.MeanScore),
		"Score 95% CI":   p.Sprintf("[%.1f, %.1f]", s.ScoreCI.Lo, s.ScoreCI.Hi),
		"Score STD":      p.Sprintf("%.1f", s.ScoreStd),
		"Median Score":   p.Sprintf("%.0f", r.Dist.Median),
		"Mean Turns":     p.Sprintf("%.2f", s.MeanTurns),
		"Fire Rate":      p.Sprintf("%.2f %%", 100*s.FireRate),
		"Max Chain":      p.Sprintf("%d", s.MaxChain),
		"Mean Max Chain": p.Sprintf("%.2f", s.MeanMaxChain),
		"All Clears":     p.Sprintf("%d", s.AllClears),
		"All Clear CI":   p.Sprintf("[%.3f%%, %.3f%%]", 100*s.AllClearCI.Lo, 100*s.AllClearCI.Hi),
		"Game Over Rate": p.Sprintf("%.2f %%", 100*s.GameOverRate),
		"Game Over CI":   p.Sprintf("[%.2f%%, %.2f%%]", 100*s.GameOverCI.Lo, 100*s.GameOverCI.Hi),
	}
	keys := []string{
		"Game Name", "Game ID", "Games", "Turns",
		"Mean Score", "Score 95% CI", "Score STD", "Median Score",
		"Mean Turns", "Fire Rate", "Max Chain", "Mean Max Chain",
		"All Clears", "All Clear CI", "Game Over Rate", "Game Over CI",
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(m))
	}
	maxKeyLen += 2
	maxValLen += 2
	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) + " | " + v + blank(maxValLen-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
