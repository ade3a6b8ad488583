// Package scheduler reruns a task on a fixed interval for watch mode.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately, then once per interval until ctx is done.
// Task errors are logged and do not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}
	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
