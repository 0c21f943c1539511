// Package xmetrics 提供最小化的可观测性接口（metrics + tracing）。
//
// 业务代码只依赖 [Observer]/[Span]/[Attr]，默认实现基于 OpenTelemetry：
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xpathconf",
//		Operation: "pathconf",
//	})
//	defer func() { span.End(xmetrics.Result{Err: err}) }()
//
// # 指标
//
//   - xpathconf.operation.total（counter）
//   - xpathconf.operation.duration（histogram，单位秒）
//
// 统一属性：component / operation / status。
package xmetrics
