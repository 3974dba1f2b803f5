package pipeline

import (
	"context"
	"io"
	"log"
	"sync/atomic"

	"github.com/gibbsgresge/CrisisEventSite/provider"
)

// fakeProvider routes every Generate call through fn and counts calls.
type fakeProvider struct {
	fn    func(prompt string) (string, error)
	calls int64
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ provider.Params) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.fn(prompt)
}

func (f *fakeProvider) callCount() int64 {
	return atomic.LoadInt64(&f.calls)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
