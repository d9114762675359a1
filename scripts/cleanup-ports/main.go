// 開発用ポートのクリーンアップユーティリティ。
// 指定ポート (省略時はよく使う開発ポート) でLISTENしているプロセスを列挙し、
// 確認の上でkillします。リトライやバックオフはありません。
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var commonPorts = []int{8000, 3000, 5000, 8080, 4000, 6000, 7000, 9000}

func main() {
	force := flag.Bool("force", false, "確認せずにkillする")
	flag.Parse()

	ports := commonPorts
	if args := flag.Args(); len(args) > 0 {
		ports = nil
		for _, arg := range args {
			port, err := strconv.Atoi(arg)
			if err != nil || port < 1 || port > 65535 {
				fmt.Fprintf(os.Stderr, "invalid port: %s\n", arg)
				os.Exit(1)
			}
			ports = append(ports, port)
		}
	}

	for _, port := range ports {
		cleanupPort(port, *force)
	}
}

func cleanupPort(port int, force bool) {
	fmt.Printf("checking port %d...\n", port)

	pids, err := listenerPIDs(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to inspect port %d: %v\n", port, err)
		return
	}
	if len(pids) == 0 {
		fmt.Printf("port %d is free\n", port)
		return
	}

	fmt.Printf("found %d process(es) on port %d:\n", len(pids), port)
	for _, pid := range pids {
		fmt.Printf("  - PID %d: %s\n", pid, processName(pid))
	}

	if !force && !confirm(fmt.Sprintf("kill all processes on port %d? (y/N): ", port)) {
		fmt.Println("skipped")
		return
	}

	for _, pid := range pids {
		if err := exec.Command("kill", "-9", strconv.Itoa(pid)).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "  failed to kill PID %d: %v\n", pid, err)
			continue
		}
		fmt.Printf("  killed PID %d\n", pid)
	}
}

// listenerPIDs は指定ポートでLISTENしているPIDの一覧を返します。
func listenerPIDs(port int) ([]int, error) {
	out, err := exec.Command("lsof", "-ti", fmt.Sprintf("tcp:%d", port), "-sTCP:LISTEN").Output()
	if err != nil {
		// lsofは該当なしでも終了コード1を返す
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) == 0 {
			return nil, nil
		}
		return nil, err
	}

	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

func processName(pid int) string {
	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "comm=").Output()
	if err != nil {
		return fmt.Sprintf("PID %d", pid)
	}
	return strings.TrimSpace(string(out))
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
