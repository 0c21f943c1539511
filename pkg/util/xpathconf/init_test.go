package xpathconf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xpathconf/pkg/observability/xlog"
)

// initForTest 绑定包级入口并在测试结束时解绑。
func initForTest(t *testing.T, opts ...Option) {
	t.Helper()
	require.NoError(t, Init(opts...))
	t.Cleanup(func() {
		if Initialized() {
			_ = Shutdown()
		}
	})
}

func TestPackageEntryPoints_BeforeInit(t *testing.T) {
	require.False(t, Initialized())

	_, err := Pathconf("/", 0)
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = PathconfArgs()
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = Bound()
	require.ErrorIs(t, err, ErrNotInitialized)

	require.ErrorIs(t, Shutdown(), ErrNotInitialized)
}

func TestInit_RegistersEntryPoints(t *testing.T) {
	requireHost(t)

	var buf bytes.Buffer
	initForTest(t, WithLogger(newBufferLogger(t, &buf)))
	require.True(t, Initialized())

	names, err := PathconfArgs()
	require.NoError(t, err)
	want, err := StandardNames()
	require.NoError(t, err)
	assert.Equal(t, want, names)

	v, err := Pathconf(t.TempDir(), int(names.PathMax))
	require.NoError(t, err)
	assert.Positive(t, v)

	lines := decodeLines(t, &buf)
	require.NotEmpty(t, lines)
	assert.Equal(t, "entry points registered", lines[0]["msg"])
	assert.InDelta(t, float64(names.NameMax), lines[0][symNameMax], 0)
}

func TestInit_SecondInitFailsCleanly(t *testing.T) {
	requireHost(t)

	initForTest(t)
	first, err := Bound()
	require.NoError(t, err)

	err = Init()
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	var re *RegistrationError
	require.ErrorAs(t, err, &re)

	second, err := Bound()
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = PathconfArgs()
	require.NoError(t, err)
}

func TestInit_FailureLeavesNothingBound(t *testing.T) {
	err := Init(nil)
	require.ErrorIs(t, err, ErrNilOption)
	var re *RegistrationError
	require.ErrorAs(t, err, &re)
	assert.False(t, Initialized())
}

func TestInit_FailuresAreLogged(t *testing.T) {
	requireHost(t)

	var global bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&global).SetFormat("json").Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	xlog.SetDefault(logger)
	t.Cleanup(xlog.ResetDefault)

	require.Error(t, Init(nil))
	lines := decodeLines(t, &global)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "entry point registration failed", lines[0]["msg"])
	assert.Contains(t, lines[0][xlog.KeyError], ErrNilOption.Error())

	var facadeBuf bytes.Buffer
	initForTest(t, WithLogger(newBufferLogger(t, &facadeBuf)))
	require.ErrorIs(t, Init(), ErrAlreadyInitialized)

	lines = decodeLines(t, &facadeBuf)
	require.Len(t, lines, 2)
	assert.Equal(t, "entry point registration failed", lines[1]["msg"])
	assert.Contains(t, lines[1][xlog.KeyError], ErrAlreadyInitialized.Error())
}

func TestShutdown_AllowsReinit(t *testing.T) {
	requireHost(t)

	require.NoError(t, Init())
	first, err := Bound()
	require.NoError(t, err)

	require.NoError(t, Shutdown())
	assert.False(t, Initialized())
	_, err = PathconfArgs()
	require.ErrorIs(t, err, ErrNotInitialized)

	initForTest(t)
	second, err := Bound()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestInit_ConcurrentOnlyOneWins(t *testing.T) {
	requireHost(t)
	t.Cleanup(func() {
		if Initialized() {
			_ = Shutdown()
		}
	})

	const n = 8
	errs := make(chan error, n)
	for range n {
		go func() { errs <- Init() }()
	}

	var ok int
	for range n {
		if err := <-errs; err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, ErrAlreadyInitialized)
		}
	}
	assert.Equal(t, 1, ok)
	assert.True(t, Initialized())

	_, err := PathconfArgs()
	require.NoError(t, err)
}
