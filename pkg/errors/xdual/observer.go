package xdual

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// Observer 接收普通形式产生的 SystemError。
//
// 实现必须并发安全；Failed 在出错的 goroutine 上同步调用，应尽快返回。
type Observer interface {
	Failed(err *xerrno.SystemError)
}

// ObserverFunc 把普通函数适配为 [Observer]。
type ObserverFunc func(err *xerrno.SystemError)

// Failed 实现 [Observer]。
func (f ObserverFunc) Failed(err *xerrno.SystemError) { f(err) }

type observerBox struct {
	o Observer
}

var current atomic.Pointer[observerBox]

// SetObserver 安装全局 Observer 并返回之前的 Observer；传入 nil 表示关闭观测。
func SetObserver(o Observer) Observer {
	var prev *observerBox
	if o == nil {
		prev = current.Swap(nil)
	} else {
		prev = current.Swap(&observerBox{o: o})
	}
	if prev == nil {
		return nil
	}
	return prev.o
}

// notify 通知当前 Observer，并吞掉 Observer 的 panic，避免观测故障改变错误路径。
func notify(err *xerrno.SystemError) {
	box := current.Load()
	if box == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("xdual: observer panic recovered", "panic", r)
		}
	}()
	box.o.Failed(err)
}

type multiObserver []Observer

func (m multiObserver) Failed(err *xerrno.SystemError) {
	for _, o := range m {
		o.Failed(err)
	}
}

// Observers 把多个 Observer 合并为一个，按顺序通知；nil 项被忽略。
func Observers(observers ...Observer) Observer {
	m := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// LogObserver 返回以 Warn 级别记录失败的 Observer。logger 为 nil 时使用 slog.Default()。
func LogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(err *xerrno.SystemError) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.LogAttrs(context.Background(), slog.LevelWarn, "os call failed", slog.Any("error", err))
	})
}
