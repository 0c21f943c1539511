package xpathconf

import (
	"context"
	"log/slog"

	"github.com/omeyang/xpathconf/pkg/observability/xlog"
	"github.com/omeyang/xpathconf/pkg/observability/xmetrics"
)

const (
	componentName  = "xpathconf"
	opPathconf     = "pathconf"
	opPathconfArgs = "pathconf_args"
	attrKeyName    = "name"
	attrKeyValue   = "value"
)

// Facade 向调用方暴露两个入口：Pathconf 和 PathconfArgs。
//
// Facade 不持有可变状态，可被任意多个 goroutine 并发使用。
type Facade struct {
	names    Names
	logger   xlog.Logger
	observer xmetrics.Observer
}

type facadeOptions struct {
	logger   xlog.Logger
	observer xmetrics.Observer
}

// Option 定义 Facade 的配置选项。
type Option func(*facadeOptions)

// WithLogger 设置日志实例，nil 时使用 xlog.Default()。
func WithLogger(logger xlog.Logger) Option {
	return func(o *facadeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置观测实例，nil 时不做观测。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *facadeOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// New 创建 Facade，并在构造时一次性解析标准配置名记录。
// 平台不支持时返回 [ConstructionError]。
func New(opts ...Option) (*Facade, error) {
	o := facadeOptions{observer: xmetrics.NoopObserver{}}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&o)
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}

	names, err := StandardNames()
	if err != nil {
		return nil, err
	}
	return &Facade{
		names:    names,
		logger:   o.logger.With(xlog.Component(componentName)),
		observer: o.observer,
	}, nil
}

// Pathconf 查询 path 上配置名 name 的宿主取值，语义同 [Query]。
//
// 仅在发起系统调用前检查 ctx；调用本身不可中断。
func (f *Facade) Pathconf(ctx context.Context, path string, name int) (value int64, err error) {
	pcName := Name(name)
	ctx, span := xmetrics.Start(ctx, f.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: opPathconf,
		Attrs: []xmetrics.Attr{
			xmetrics.String(xlog.KeyPath, path),
			xmetrics.String(attrKeyName, pcName.String()),
		},
	})
	defer func() {
		result := xmetrics.Result{Err: err}
		// 0 是合法取值，失败时不记录 value，避免与真实结果混淆。
		if err == nil {
			result.Attrs = []xmetrics.Attr{xmetrics.Int64(attrKeyValue, value)}
		}
		span.End(result)
	}()

	if err = ctx.Err(); err != nil {
		return 0, err
	}

	value, err = Query(path, pcName)
	if err != nil {
		f.logger.Warn(ctx, "pathconf failed",
			xlog.Path(path), slog.String(attrKeyName, pcName.String()), xlog.Err(err))
		return 0, err
	}
	f.logger.Debug(ctx, "pathconf",
		xlog.Path(path), slog.String(attrKeyName, pcName.String()), slog.Int64(attrKeyValue, value))
	return value, nil
}

// PathconfArgs 返回宿主的标准配置名记录。同一进程内重复调用结果相同。
func (f *Facade) PathconfArgs(ctx context.Context) (names Names, err error) {
	ctx, span := xmetrics.Start(ctx, f.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: opPathconfArgs,
	})
	defer func() {
		span.End(xmetrics.Result{Err: err})
	}()

	if err = ctx.Err(); err != nil {
		return Names{}, err
	}
	return f.names, nil
}
