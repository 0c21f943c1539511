package xpathconf

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xpathconf/pkg/observability/xlog"
)

// 进程级入口绑定。Init 绑定，Shutdown 解绑。
var (
	bound  atomic.Pointer[Facade]
	bindMu sync.Mutex
)

// Init 创建默认 Facade 并绑定到包级入口 [Pathconf] 与 [PathconfArgs]。
//
// 每个进程在首次使用包级入口前调用一次。失败返回 [RegistrationError]，
// 不留下任何绑定。已绑定时再次调用返回包装 [ErrAlreadyInitialized] 的
// [RegistrationError]，已有绑定保持不变。
func Init(opts ...Option) error {
	bindMu.Lock()
	defer bindMu.Unlock()

	ctx := context.Background()
	if cur := bound.Load(); cur != nil {
		err := &RegistrationError{Err: ErrAlreadyInitialized}
		cur.logger.Warn(ctx, "entry point registration failed", xlog.Err(err))
		return err
	}
	f, err := New(opts...)
	if err != nil {
		rerr := &RegistrationError{Err: err}
		// 构造失败时没有 Facade 日志实例，使用全局日志。
		xlog.Warn(ctx, "entry point registration failed", xlog.Component(componentName), xlog.Err(rerr))
		return rerr
	}
	bound.Store(f)

	f.logger.Info(ctx, "entry points registered",
		slog.Int(symLinkMax, int(f.names.LinkMax)),
		slog.Int(symPathMax, int(f.names.PathMax)),
		slog.Int(symNameMax, int(f.names.NameMax)),
		slog.Int(symPipeBuf, int(f.names.PipeBuf)),
	)
	return nil
}

// Shutdown 解绑包级入口，之后可再次 Init。未绑定时返回 [ErrNotInitialized]。
func Shutdown() error {
	bindMu.Lock()
	defer bindMu.Unlock()

	f := bound.Load()
	if f == nil {
		return ErrNotInitialized
	}
	bound.Store(nil)
	f.logger.Info(context.Background(), "entry points unregistered")
	return nil
}

// Initialized 报告包级入口是否已绑定。
func Initialized() bool {
	return bound.Load() != nil
}

// Bound 返回当前绑定的 Facade，未绑定时返回 [ErrNotInitialized]。
func Bound() (*Facade, error) {
	f := bound.Load()
	if f == nil {
		return nil, ErrNotInitialized
	}
	return f, nil
}

// Pathconf 是绑定 Facade 的包级入口，Init 之前调用返回 [ErrNotInitialized]。
func Pathconf(path string, name int) (int64, error) {
	f, err := Bound()
	if err != nil {
		return 0, err
	}
	return f.Pathconf(context.Background(), path, name)
}

// PathconfArgs 是绑定 Facade 的包级入口，Init 之前调用返回 [ErrNotInitialized]。
func PathconfArgs() (Names, error) {
	f, err := Bound()
	if err != nil {
		return Names{}, err
	}
	return f.PathconfArgs(context.Background())
}
