// xpathconf 是 pathconf 的命令行前端，行为类似 getconf。
//
// 用法:
//
//	xpathconf [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（yaml/json）
//	    --log-level   日志级别 (debug/info/warn/error)
//	-o, --output      输出格式 (text/json，默认 text)
//
// 命令:
//
//	query [-n NAME]... <path>...   查询路径上的配置值
//	names                          输出宿主标准配置名编码
//
// 退出码:
//
//	0: 成功
//	1: 至少一个查询失败
//	2: 参数错误（缺少路径、未知配置名、无效配置等）
//
// 示例:
//
//	xpathconf query /                       # 查询四个标准配置名
//	xpathconf query -n NAME_MAX /tmp /home  # 查询多个路径的 NAME_MAX
//	xpathconf -o json names                 # 以 JSON 输出标准配置名编码
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// 退出码。
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xpathconf",
		Usage:     "查询文件系统路径的 pathconf 配置值",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "输出格式 (text/json)",
			},
		},
		Commands:     createCommands(),
		OnUsageError: onUsageError,
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			var ec cli.ExitCoder
			if errors.As(err, &ec) && ec.Error() != "" {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

// run 执行 CLI 并返回退出码。parent 取消或收到 SIGINT/SIGTERM 时中止查询。
func run(parent context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	stop := setupSignalHandler(cancel)
	defer stop()

	return exitCode(app.Run(ctx, args), stderr)
}

// exitCode 将命令错误映射为退出码，并输出尚未输出的错误信息。
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return exitUsage
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "已取消")
		return exitFailure
	}
	// 框架产生的 ExitCoder（如未知命令）已由 ExitErrHandler 输出。
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return exitUsage
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return exitFailure
}
