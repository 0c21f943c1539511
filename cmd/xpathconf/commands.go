package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xpathconf/pkg/observability/xlog"
	"github.com/omeyang/xpathconf/pkg/observability/xmetrics"
	"github.com/omeyang/xpathconf/pkg/util/xpathconf"
)

// 全局与子命令标志名。
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagOutput   = "output"
	flagName     = "name"
)

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误，退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// onUsageError 将框架的标志解析错误归类为参数错误。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createQueryCommand(),
		createNamesCommand(),
	}
}

// createQueryCommand 创建 query 子命令。
func createQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Aliases:   []string{"q"},
		Usage:     "查询路径上的配置值，-1 输出为 undefined",
		ArgsUsage: "<path>...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    flagName,
				Aliases: []string{"n"},
				Usage:   "配置名（LINK_MAX/PATH_MAX/NAME_MAX/PIPE_BUF 或数字编码），可重复",
			},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return usageErrorf("query 需要至少一个路径")
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if flagNames := cmd.StringSlice(flagName); len(flagNames) > 0 {
				cfg.Query.Names = flagNames
			}
			return withFacade(ctx, cmd, cfg, func(f *xpathconf.Facade) error {
				return cmdQuery(ctx, cmd, f, cfg, paths)
			})
		},
	}
}

// createNamesCommand 创建 names 子命令。
func createNamesCommand() *cli.Command {
	return &cli.Command{
		Name:         "names",
		Usage:        "输出宿主标准配置名编码",
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return usageErrorf("names 不接受参数: %v", cmd.Args().Slice())
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return withFacade(ctx, cmd, cfg, func(f *xpathconf.Facade) error {
				names, err := f.PathconfArgs(ctx)
				if err != nil {
					return err
				}
				return writeNames(cmd.Root().Writer, cfg.Output, names)
			})
		},
	}
}

// withFacade 按配置初始化日志与包级入口，执行 fn 后解绑。
func withFacade(ctx context.Context, cmd *cli.Command, cfg appConfig, fn func(*xpathconf.Facade) error) error {
	logger, closeLog, err := newLogger(cfg.Log, cmd.Root().ErrWriter)
	if err != nil {
		return &usageError{err: err}
	}
	defer func() { _ = closeLog() }()
	xlog.SetDefault(logger)
	defer xlog.ResetDefault()

	observer, err := xmetrics.NewOTelObserver()
	if err != nil {
		return err
	}
	if err := xpathconf.Init(xpathconf.WithLogger(logger), xpathconf.WithObserver(observer)); err != nil {
		return err
	}
	defer func() {
		if err := xpathconf.Shutdown(); err != nil {
			logger.Warn(ctx, "shutdown failed", xlog.Err(err))
		}
	}()

	f, err := xpathconf.Bound()
	if err != nil {
		return err
	}
	return fn(f)
}

// cmdQuery 并发查询每个 (path, name) 组合。
//
// 单个查询失败不影响其他查询，错误输出到 stderr，全部完成后以退出码 1 结束。
func cmdQuery(ctx context.Context, cmd *cli.Command, f *xpathconf.Facade, cfg appConfig, paths []string) error {
	names := make([]xpathconf.Name, 0, len(cfg.Query.Names))
	for _, s := range cfg.Query.Names {
		n, err := xpathconf.ParseName(s)
		if err != nil {
			return &usageError{err: err}
		}
		names = append(names, n)
	}

	results := make([]queryResult, len(paths)*len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Query.Concurrency)
	for i, path := range paths {
		for j, name := range names {
			idx := i*len(names) + j
			g.Go(func() error {
				v, err := f.Pathconf(gctx, path, int(name))
				results[idx] = newQueryResult(path, name, v, err)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeResults(cmd.Root().Writer, cfg.Output, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(cmd.Root().ErrWriter, "xpathconf: %v\n", r.err)
		}
	}
	if failed > 0 {
		return &exitError{code: exitFailure}
	}
	return nil
}

// setupSignalHandler 设置信号处理，返回的函数停止监听。
// 第一次信号取消 ctx，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigCh:
			signal.Stop(sigCh)
			os.Exit(130)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
