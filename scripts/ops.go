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

// 開發用工作：go run ./scripts <task>
//
//	test         全部測試，只列出 ok / FAIL
//	test-detail  verbose，略過沒有測試的套件
//	bench        引擎熱路徑的 benchmark (sdk/field, sdk/plan)
//	race         以 -race 跑模擬器、機台池與伺服器
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

const (
	green  = "\033[1;32m"
	red    = "\033[1;31m"
	yellow = "\033[1;33m"
	reset  = "\033[0m"
)

type task struct {
	args   []string
	filter func(line string) (string, bool)
}

var tasks = map[string]task{
	"test":        {args: []string{"test", "./...", "-cover", "-count=1"}, filter: onlyResults},
	"test-detail": {args: []string{"test", "./...", "-v", "-count=1"}, filter: skipNoTests},
	"bench":       {args: []string{"test", "./sdk/field/", "./sdk/plan/", "-run", "^$", "-bench", ".", "-benchmem"}},
	"race":        {args: []string{"test", "-race", "-count=1", ".", "./server/..."}, filter: onlyResults},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		fmt.Printf("%sunknown task: %s%s\n", yellow, os.Args[1], reset)
		usage()
		os.Exit(1)
	}
	if err := run(t); err != nil {
		fmt.Printf("%s%s finished with errors: %v%s\n", red, os.Args[1], err, reset)
		os.Exit(1)
	}
}

func usage() {
	names := make([]string, 0, len(tasks))
	for k := range tasks {
		names = append(names, k)
	}
	sort.Strings(names)
	fmt.Println("usage: go run ./scripts [" + strings.Join(names, "|") + "]")
}

func run(t task) error {
	// 測試一律重跑，不吃 cache
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		return err
	}
	cmd := exec.Command("go", t.args...)
	cmd.Stderr = os.Stderr
	if t.filter == nil {
		cmd.Stdout = os.Stdout
		return cmd.Run()
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return err
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		if line, ok := t.filter(sc.Text()); ok {
			fmt.Println(line)
		}
	}
	return cmd.Wait()
}

func colorize(line string) string {
	switch {
	case strings.HasPrefix(line, "ok"):
		return green + line + reset
	case strings.HasPrefix(line, "FAIL"), strings.Contains(line, "build failed"):
		return red + line + reset
	}
	return line
}

func onlyResults(line string) (string, bool) {
	if strings.HasPrefix(line, "ok") || strings.HasPrefix(line, "FAIL") || strings.Contains(line, "build failed") {
		return colorize(line), true
	}
	return "", false
}

func skipNoTests(line string) (string, bool) {
	if strings.Contains(line, "[no test files]") {
		return "", false
	}
	return colorize(line), true
}
