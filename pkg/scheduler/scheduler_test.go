package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var sched *scheduler.Scheduler

	AfterEach(func() {
		if sched != nil {
			sched.Close()
		}
	})

	It("should resolve the future with the work result", func() {
		sched = scheduler.NewScheduler(2)

		f := sched.AddWork(func(ctx context.Context) (any, error) {
			return "done", nil
		})

		Eventually(f.IsResolved, time.Second).Should(BeTrue())
		result, ok := f.Poll()
		Expect(ok).To(BeTrue())
		Expect(result.Err).NotTo(HaveOccurred())
		Expect(result.Data).To(Equal("done"))
	})

	It("should resolve the future with the work error", func() {
		sched = scheduler.NewScheduler(1)

		f := sched.AddWork(func(ctx context.Context) (any, error) {
			return nil, errors.New("boom")
		})

		result, err := f.Wait(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Err).To(MatchError("boom"))
	})

	It("should never run more work concurrently than it has workers", func() {
		sched = scheduler.NewScheduler(2)

		var running, peak int32
		release := make(chan struct{})
		work := func(ctx context.Context) (any, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
			return nil, nil
		}

		futures := []interface{ IsResolved() bool }{}
		for i := 0; i < 5; i++ {
			futures = append(futures, sched.AddWork(work))
		}

		Eventually(func() int32 { return atomic.LoadInt32(&running) }, time.Second).Should(Equal(int32(2)))
		Consistently(func() int32 { return atomic.LoadInt32(&running) }, 100*time.Millisecond).Should(Equal(int32(2)))
		close(release)

		for _, f := range futures {
			Eventually(f.IsResolved, time.Second).Should(BeTrue())
		}
		Expect(atomic.LoadInt32(&peak)).To(Equal(int32(2)))
	})

	It("should cancel the work context when the future is stopped", func() {
		sched = scheduler.NewScheduler(1)

		started := make(chan struct{})
		f := sched.AddWork(func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})

		Eventually(started, time.Second).Should(BeClosed())
		f.Stop()

		result, err := f.Wait(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Err).To(MatchError(context.Canceled))
	})

	It("should fail work added after close", func() {
		sched = scheduler.NewScheduler(1)
		sched.Close()

		f := sched.AddWork(func(ctx context.Context) (any, error) {
			return nil, nil
		})

		result, ok := f.Poll()
		Expect(ok).To(BeTrue())
		Expect(result.Err).To(MatchError(scheduler.ErrSchedulerClosed))
	})
})
