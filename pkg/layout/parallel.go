package layout

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// taskPanic carries a panic out of a worker so it can be raised again on
// the goroutine that started the traversal.
type taskPanic struct {
	value any
}

func (p *taskPanic) Error() string { return fmt.Sprintf("panic in layout worker: %v", p.value) }

// workerPool runs traversal tasks on at most n goroutines. When the pool is
// saturated a task runs on the goroutine that submitted it.
type workerPool struct {
	g      *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	first *taskPanic
}

func newWorkerPool(n int) *workerPool {
	ctx, cancel := context.WithCancel(context.Background())
	g := new(errgroup.Group)
	g.SetLimit(n)
	return &workerPool{g: g, ctx: ctx, cancel: cancel}
}

func (p *workerPool) spawn(task func()) {
	if p.ctx.Err() != nil {
		return
	}
	if !p.g.TryGo(func() error { return p.run(task) }) {
		_ = p.run(task)
	}
}

// run executes task, turning a panic into an error and stopping the pool.
func (p *workerPool) run(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			tp := &taskPanic{value: r}
			p.mu.Lock()
			if p.first == nil {
				p.first = tp
			}
			p.mu.Unlock()
			p.cancel()
			err = tp
		}
	}()
	task()
	return nil
}

// wait blocks until every task is done and re-panics with the first panic
// any of them raised.
func (p *workerPool) wait() {
	_ = p.g.Wait()
	p.cancel()
	if p.first != nil {
		panic(p.first.value)
	}
}

// ParallelPreorder runs t top-down, forking one task per child once the
// parent is processed. Siblings run in no particular order.
func ParallelPreorder(t PreorderTraversal, root Flow, workers int) {
	pool := newWorkerPool(workers)
	var visit func(f Flow)
	visit = func(f Flow) {
		if pool.ctx.Err() != nil {
			return
		}
		if t.ShouldProcess(f) {
			t.Process(f)
		}
		for _, kid := range f.Base().children {
			kf := kid.Flow()
			pool.spawn(func() { visit(kf) })
		}
	}
	pool.spawn(func() { visit(root) })
	pool.wait()
}

// ParallelPostorder runs t bottom-up. Leaves are scheduled first; each
// finished flow decrements its parent's pending-children count and the task
// that brings it to zero goes on to process the parent.
func ParallelPostorder(t PostorderTraversal, root Flow, workers int) {
	var leaves []Flow
	prepareParallelInfo(root, nil, &leaves)

	pool := newWorkerPool(workers)
	climb := func(f Flow) {
		for f != nil {
			if pool.ctx.Err() != nil {
				return
			}
			if t.ShouldProcess(f) {
				t.Process(f)
			}
			parent := f.Base().parallel.parent
			if parent == nil || parent.Base().parallel.childrenCount.Add(-1) != 0 {
				return
			}
			f = parent
		}
	}
	for _, leaf := range leaves {
		pool.spawn(func() { climb(leaf) })
	}
	pool.wait()
}

// prepareParallelInfo resets the fork-join bookkeeping for a subtree.
func prepareParallelInfo(f Flow, parent Flow, leaves *[]Flow) {
	b := f.Base()
	b.parallel.parent = parent
	b.parallel.childrenCount.Store(int32(len(b.children)))
	if len(b.children) == 0 {
		*leaves = append(*leaves, f)
		return
	}
	for _, kid := range b.children {
		prepareParallelInfo(kid.Flow(), f, leaves)
	}
}
