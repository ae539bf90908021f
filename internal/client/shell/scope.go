package shell

import (
	"context"
)

// scope bounds the lifetime of the work started for one view or one
// session. Once canceled, results that arrive for it are stale.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newScope() *scope {
	ctx, cancel := context.WithCancel(context.Background())
	return &scope{ctx: ctx, cancel: cancel}
}

func (s *scope) done() bool { return s.ctx.Err() != nil }

// bind derives a request context that ends when either the caller's ctx or
// the scope ends.
func bind(ctx context.Context, sc *scope) (context.Context, func()) {
	rctx, cancel := context.WithCancel(sc.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return rctx, func() {
		stop()
		cancel()
	}
}
