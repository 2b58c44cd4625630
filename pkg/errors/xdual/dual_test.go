package xdual

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tryFakeOpen 模拟一个 Try 形式：name 为空时以 ENOENT 失败并返回哨兵 -1。
func tryFakeOpen(name string, ec *xerrno.Code) int {
	Enter(ec)
	if name == "" {
		*ec = xerrno.FromError(syscall.ENOENT)
		return -1
	}
	return 3
}

// fakeOpen 是 tryFakeOpen 的普通形式。
func fakeOpen(name string) (int, error) {
	return Call(func(ec *xerrno.Code) int {
		return tryFakeOpen(name, ec)
	}, "error opening file: [", name, "]")
}

// describeCounter 统计被格式化的次数，用于验证消息只在失败时构造。
type describeCounter struct{ n *int }

func (d describeCounter) Describe() string {
	*d.n++
	return "counted"
}

func TestEnter(t *testing.T) {
	var ec xerrno.Code
	assert.NotPanics(t, func() { Enter(&ec) })

	assert.PanicsWithValue(t, "xdual: nil error code", func() { Enter(nil) })

	dirty := xerrno.Make(int(syscall.EBADF))
	assert.Panics(t, func() { Enter(&dirty) })
}

func TestTryForm(t *testing.T) {
	t.Run("失败设置错误码并返回哨兵", func(t *testing.T) {
		var ec xerrno.Code
		fd := tryFakeOpen("", &ec)
		assert.Equal(t, -1, fd)
		assert.Equal(t, xerrno.Make(int(syscall.ENOENT)), ec)
	})

	t.Run("成功保持零值", func(t *testing.T) {
		var ec xerrno.Code
		fd := tryFakeOpen("a", &ec)
		assert.Equal(t, 3, fd)
		assert.True(t, ec.IsZero())
	})

	t.Run("复用未清零的错误码触发契约违反", func(t *testing.T) {
		var ec xerrno.Code
		_ = tryFakeOpen("", &ec)
		assert.Panics(t, func() { _ = tryFakeOpen("a", &ec) })
	})
}

func TestCall(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		fd, err := fakeOpen("a")
		require.NoError(t, err)
		assert.Equal(t, 3, fd)
	})

	t.Run("失败", func(t *testing.T) {
		fd, err := fakeOpen("")
		require.Error(t, err)
		assert.Equal(t, -1, fd)

		se, ok := xerrno.AsSystemError(err)
		require.True(t, ok)

		// 与 Try 形式设置的错误码完全一致。
		var ec xerrno.Code
		_ = tryFakeOpen("", &ec)
		assert.Equal(t, ec, se.Code())

		assert.Equal(t, "error opening file: []", se.Message())
		assert.ErrorIs(t, err, fs.ErrNotExist)

		// 位置归属到普通形式 fakeOpen。
		assert.Equal(t, "dual_test.go", filepath.Base(se.File()))
		assert.True(t, strings.HasSuffix(se.Function(), ".fakeOpen"), se.Function())
	})
}

func TestCall_MessageFormattedOnlyOnFailure(t *testing.T) {
	n := 0
	counter := describeCounter{n: &n}

	_, err := Call(func(ec *xerrno.Code) int { return 1 }, "label: ", counter)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = Call(func(ec *xerrno.Code) int {
		*ec = xerrno.Make(int(syscall.EIO))
		return 0
	}, "label: ", counter)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, strings.HasPrefix(err.Error(), "label: counted: "))
}

func TestExec(t *testing.T) {
	require.NoError(t, Exec(func(ec *xerrno.Code) { Enter(ec) }))

	err := Exec(func(ec *xerrno.Code) {
		Enter(ec)
		*ec = xerrno.Make(int(syscall.EACCES))
	}, "unlink: [", "/x", "]")
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EACCES)
	assert.True(t, strings.HasPrefix(err.Error(), "unlink: [/x]: "))

	se, ok := xerrno.AsSystemError(err)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(se.Function(), ".TestExec"), se.Function())
}

func TestCallFound(t *testing.T) {
	lookup := func(key string) (string, bool, error) {
		return CallFound(func(ec *xerrno.Code) (string, bool) {
			Enter(ec)
			switch key {
			case "io":
				*ec = xerrno.Make(int(syscall.EIO))
				return "", false
			case "root":
				return "0", true
			default:
				return "", false
			}
		}, "lookup: [", key, "]")
	}

	v, found, err := lookup("root")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0", v)

	_, found, err = lookup("nobody")
	require.NoError(t, err, "not found is not an error")
	assert.False(t, found)

	_, found, err = lookup("io")
	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, err, syscall.EIO)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(fakeOpen("a")))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, syscall.ENOENT)
	}()
	_ = Must(fakeOpen(""))
	t.Fatal("Must should have panicked")
}

func TestMustExec(t *testing.T) {
	assert.NotPanics(t, func() { MustExec(nil) })
	assert.Panics(t, func() { MustExec(errors.New("x")) })
}

// 不可 t.Parallel()：替换全局 Observer。
func TestObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockObserver(ctrl)

	prev := SetObserver(mock)
	t.Cleanup(func() { SetObserver(prev) })

	mock.EXPECT().Failed(gomock.Any()).Do(func(err *xerrno.SystemError) {
		assert.Equal(t, xerrno.Make(int(syscall.ENOENT)), err.Code())
	}).Times(1)

	_, err := fakeOpen("")
	require.Error(t, err)

	// 成功路径与 Try 形式不通知 Observer。
	_, err = fakeOpen("a")
	require.NoError(t, err)
	var ec xerrno.Code
	_ = tryFakeOpen("", &ec)
}

// 不可 t.Parallel()：替换全局 Observer。
func TestObserver_PanicRecovered(t *testing.T) {
	prev := SetObserver(ObserverFunc(func(*xerrno.SystemError) { panic("observer bug") }))
	t.Cleanup(func() { SetObserver(prev) })

	assert.NotPanics(t, func() {
		_, err := fakeOpen("")
		assert.Error(t, err)
	})
}

// 不可 t.Parallel()：替换全局 Observer。
func TestSetObserver_ReturnsPrevious(t *testing.T) {
	orig := SetObserver(nil)
	t.Cleanup(func() { SetObserver(orig) })

	first := ObserverFunc(func(*xerrno.SystemError) {})
	assert.Nil(t, SetObserver(first))
	assert.NotNil(t, SetObserver(nil))
	assert.Nil(t, SetObserver(nil))
}

func TestObservers(t *testing.T) {
	var order []string
	o := Observers(
		ObserverFunc(func(*xerrno.SystemError) { order = append(order, "a") }),
		nil,
		ObserverFunc(func(*xerrno.SystemError) { order = append(order, "b") }),
	)
	o.Failed(xerrno.New(xerrno.Make(int(syscall.EIO))))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogObserver(logger).Failed(xerrno.New(xerrno.Make(int(syscall.ENOENT)), xerrno.WithMessage("open /nope")))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "os call failed")
	assert.Contains(t, out, `error.msg="open /nope"`)
	assert.Contains(t, out, "error.category=system")
}
