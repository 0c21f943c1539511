package xlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 不可 t.Parallel()：替换全局 Logger。
func TestDefault_LazyAndStable(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())
	assert.Equal(t, LevelInfo, first.GetLevel())
}

// 不可 t.Parallel()：替换全局 Logger。
func TestSetDefault(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	var buf bytes.Buffer
	logger, _, err := New().SetOutput(&buf).SetLevel(LevelDebug).SetAddSource(true).Build()
	require.NoError(t, err)

	SetDefault(nil)
	SetDefault(logger)
	assert.Same(t, logger, Default())

	ctx := context.Background()
	Debug(ctx, "g-debug")
	Info(ctx, "g-info")
	Warn(ctx, "g-warn")
	Error(ctx, "g-error")

	out := buf.String()
	for _, want := range []string{"g-debug", "g-info", "g-warn", "g-error"} {
		assert.Contains(t, out, want)
	}
	// 全局函数多一层调用，源码位置仍应指向测试文件。
	assert.Contains(t, out, "global_test.go")
}
