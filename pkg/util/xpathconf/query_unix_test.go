//go:build unix

package xpathconf

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func standardNames(t *testing.T) Names {
	t.Helper()
	requireHost(t)
	names, err := StandardNames()
	require.NoError(t, err)
	return names
}

func TestQuery_StandardNamesOnDirectory(t *testing.T) {
	names := standardNames(t)
	dir := t.TempDir()

	for _, n := range names.All() {
		t.Run(n.String(), func(t *testing.T) {
			v, err := Query(dir, n)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, NoLimit)
		})
	}
}

func TestQuery_RegularFile(t *testing.T) {
	names := standardNames(t)
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	v, err := Query(file, names.LinkMax)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, NoLimit)
}

func TestQuery_NameMaxStable(t *testing.T) {
	names := standardNames(t)
	dir := t.TempDir()

	first, err := Query(dir, names.NameMax)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, first, int64(0))

	for range 3 {
		again, err := Query(dir, names.NameMax)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestQuery_PipeBufPositive(t *testing.T) {
	names := standardNames(t)

	v, err := Query(t.TempDir(), names.PipeBuf)
	require.NoError(t, err)
	assert.Positive(t, v)
}

func TestQuery_NonexistentPath(t *testing.T) {
	names := standardNames(t)
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	for _, n := range names.All() {
		t.Run(n.String(), func(t *testing.T) {
			_, err := Query(missing, n)

			var qe *QueryError
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, missing, qe.Path)
			assert.Equal(t, n, qe.Name)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.ErrorIs(t, err, unix.ENOENT)
		})
	}
}

func TestQuery_EmptyPath(t *testing.T) {
	names := standardNames(t)

	_, err := Query("", names.NameMax)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.ErrorIs(t, err, unix.ENOENT)
}

func TestQuery_NULInPath(t *testing.T) {
	names := standardNames(t)

	_, err := Query(t.TempDir()+"\x00suffix", names.NameMax)
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.ErrorIs(t, err, unix.EINVAL)
}

func TestQuery_UnrecognizedName(t *testing.T) {
	requireHost(t)

	_, err := Query(t.TempDir(), Name(1<<20))
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.ErrorIs(t, err, unix.EINVAL)
}

// 超出 C int 的编码不能被截断成另一个配置名。
// 不可 t.Parallel()：替换包级变量 pathconf。
func TestQuery_CodeOutsideCInt(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("Name is 32-bit on this platform")
	}
	names := standardNames(t)
	dir := t.TempDir()

	origPathconf := pathconf
	t.Cleanup(func() { pathconf = origPathconf })
	pathconf = func(string, int) (int64, error) {
		t.Fatal("out-of-range code must not reach the host")
		return 0, nil
	}

	high := int64(1)<<32 + int64(names.NameMax)
	for _, code := range []int64{high, math.MaxInt32 + 1, math.MinInt32 - 1} {
		v, err := Query(dir, Name(code))
		var qe *QueryError
		require.ErrorAs(t, err, &qe, "code %d", code)
		assert.ErrorIs(t, err, unix.EINVAL)
		assert.Zero(t, v)
	}
}

// 不可 t.Parallel()：替换包级变量 pathconf。
func TestQuery_NoLimitIsNotAnError(t *testing.T) {
	names := standardNames(t)
	origPathconf := pathconf
	defer func() { pathconf = origPathconf }()

	pathconf = func(string, int) (int64, error) {
		return NoLimit, nil
	}

	v, err := Query(t.TempDir(), names.LinkMax)
	require.NoError(t, err)
	assert.Equal(t, NoLimit, v)
}

// 不可 t.Parallel()：替换包级变量 pathconf。
func TestQuery_PathconfError(t *testing.T) {
	names := standardNames(t)
	origPathconf := pathconf
	defer func() { pathconf = origPathconf }()

	pathconf = func(string, int) (int64, error) {
		return 0, unix.EACCES
	}

	v, err := Query(t.TempDir(), names.NameMax)
	assert.Equal(t, int64(0), v)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

// 不可 t.Parallel()：替换包级变量 statPath。
func TestQuery_StatErrorSkipsPathconf(t *testing.T) {
	names := standardNames(t)
	origStat, origPathconf := statPath, pathconf
	defer func() { statPath, pathconf = origStat, origPathconf }()

	mockErr := errors.New("mock stat error")
	statPath = func(string) error { return mockErr }
	pathconf = func(string, int) (int64, error) {
		t.Fatal("pathconf must not be called after stat failure")
		return 0, nil
	}

	_, err := Query("/", names.PathMax)
	require.ErrorIs(t, err, mockErr)
}

// 不可 t.Parallel()：读取结果需与替换包级变量的测试互斥。
func TestQuery_Concurrent(t *testing.T) {
	names := standardNames(t)
	dir := t.TempDir()

	want := make(map[Name]int64)
	for _, n := range names.All() {
		v, err := Query(dir, n)
		require.NoError(t, err)
		want[n] = v
	}

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func(idx int) {
			defer wg.Done()
			n := names.All()[idx%4]
			v, err := Query(dir, n)
			if err != nil {
				t.Errorf("concurrent Query(%s): %v", n, err)
				return
			}
			if v != want[n] {
				t.Errorf("concurrent Query(%s) = %d, want %d", n, v, want[n])
			}
		}(i)
	}
	wg.Wait()
}
