// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/sourcegraph/conc/pool"
	"k8s.io/apimachinery/pkg/runtime/schema"
	k8stypes "k8s.io/apimachinery/pkg/types"
	toolscache "k8s.io/client-go/tools/cache"
	"k8s.io/utils/clock"
	ctrlrt "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/manager"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	ctrlreconcile "sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/requeue"
)

// Request identifies one custom resource to reconcile
type Request struct {
	GVK schema.GroupVersionKind
	k8stypes.NamespacedName
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s", r.GVK.Kind, r.NamespacedName.String())
}

// Dispatcher feeds reconcile requests to the reconciler of each kind. A key
// is never reconciled by two workers at once, a key that changes while it is
// reconciled runs once more afterwards, and a new event for a key supersedes
// its pending delayed requeue.
type Dispatcher struct {
	log     logr.Logger
	clock   clock.WithDelayedExecution
	workers int

	handlers map[schema.GroupVersionKind]ctrlreconcile.Reconciler

	mu         sync.Mutex
	cond       *sync.Cond
	pending    []Request
	queued     map[Request]struct{}
	processing map[Request]struct{}
	timers     map[Request]clock.Timer
	stopped    bool
}

var (
	_ manager.Runnable               = &Dispatcher{}
	_ manager.LeaderElectionRunnable = &Dispatcher{}
)

// NewDispatcher returns a Dispatcher running the supplied number of workers
func NewDispatcher(log logr.Logger, clk clock.WithDelayedExecution, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		log:        log.WithName("dispatcher"),
		clock:      clk,
		workers:    workers,
		handlers:   map[schema.GroupVersionKind]ctrlreconcile.Reconciler{},
		queued:     map[Request]struct{}{},
		processing: map[Request]struct{}{},
		timers:     map[Request]clock.Timer{},
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Register routes the requests of the supplied kind to r
func (d *Dispatcher) Register(gvk schema.GroupVersionKind, r ctrlreconcile.Reconciler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[gvk] = r
}

// Enqueue asks for the supplied resource to be reconciled as soon as a
// worker is free. Any delayed requeue pending for it is cancelled.
func (d *Dispatcher) Enqueue(req Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[req]; ok {
		t.Stop()
		delete(d.timers, req)
	}
	d.add(req)
}

// EnqueueAfter asks for the supplied resource to be reconciled once the
// delay elapsed, replacing any earlier delayed requeue. It does nothing when
// the resource is already waiting for a worker.
func (d *Dispatcher) EnqueueAfter(req Request, after time.Duration) {
	if after <= 0 {
		d.Enqueue(req)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if _, ok := d.queued[req]; ok {
		return
	}
	if t, ok := d.timers[req]; ok {
		t.Stop()
	}
	var timer clock.Timer
	timer = d.clock.AfterFunc(after, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		// a newer timer or event took over
		if d.timers[req] != timer {
			return
		}
		delete(d.timers, req)
		d.add(req)
	})
	d.timers[req] = timer
}

// Pending returns the number of delayed requeues waiting on their timer
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// add must be called with mu held
func (d *Dispatcher) add(req Request) {
	if d.stopped {
		return
	}
	if _, ok := d.queued[req]; ok {
		return
	}
	d.queued[req] = struct{}{}
	if _, ok := d.processing[req]; ok {
		// picked up again by done()
		return
	}
	d.pending = append(d.pending, req)
	d.cond.Signal()
}

// next blocks until a request is available or the Dispatcher stopped
func (d *Dispatcher) next() (Request, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.pending) == 0 && !d.stopped {
		d.cond.Wait()
	}
	if d.stopped {
		return Request{}, false
	}
	req := d.pending[0]
	d.pending = d.pending[1:]
	delete(d.queued, req)
	d.processing[req] = struct{}{}
	return req, true
}

// done marks the request as processed and hands it back to the queue when
// it changed in the meantime
func (d *Dispatcher) done(req Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.processing, req)
	if _, ok := d.queued[req]; ok && !d.stopped {
		d.pending = append(d.pending, req)
		d.cond.Signal()
	}
}

// Start runs the workers until ctx is done. In-flight reconciles are
// allowed to finish.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.log.Info("starting workers", "count", d.workers)
	p := pool.New().WithMaxGoroutines(d.workers)
	for i := 0; i < d.workers; i++ {
		p.Go(func() {
			for {
				req, ok := d.next()
				if !ok {
					return
				}
				d.process(ctx, req)
				d.done(req)
			}
		})
	}
	<-ctx.Done()
	d.stop()
	p.Wait()
	d.log.Info("all workers finished")
	return nil
}

// stop wakes every idle worker and cancels the pending timers
func (d *Dispatcher) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for req, t := range d.timers {
		t.Stop()
		delete(d.timers, req)
	}
	d.cond.Broadcast()
}

// NeedLeaderElection makes only the elected leader reconcile
func (d *Dispatcher) NeedLeaderElection() bool {
	return true
}

func (d *Dispatcher) process(ctx context.Context, req Request) {
	d.mu.Lock()
	r, ok := d.handlers[req.GVK]
	d.mu.Unlock()
	if !ok {
		d.log.Info("no reconciler registered, dropping request", "request", req.String())
		return
	}

	key := req.String()
	result, err := r.Reconcile(ctx, ctrlrt.Request{NamespacedName: req.NamespacedName})

	switch {
	case err != nil:
		d.log.Error(err, "reconcile failed", "request", key)
		d.EnqueueAfter(req, requeue.DefaultRequeueAfterDuration)
	case result.RequeueAfter > 0:
		d.EnqueueAfter(req, result.RequeueAfter)
	case result.Requeue:
		d.Enqueue(req)
	}
}

// EventHandler returns the informer event handler enqueueing the resources
// of the supplied kind. Updates only count when the generation or the
// annotations changed; status patches by the controller itself are ignored.
func (d *Dispatcher) EventHandler(gvk schema.GroupVersionKind) toolscache.ResourceEventHandler {
	changed := predicate.Or[client.Object](predicate.GenerationChangedPredicate{}, predicate.AnnotationChangedPredicate{})
	enqueue := func(obj interface{}) {
		if tombstone, ok := obj.(toolscache.DeletedFinalStateUnknown); ok {
			obj = tombstone.Obj
		}
		o, ok := obj.(client.Object)
		if !ok {
			return
		}
		d.Enqueue(Request{GVK: gvk, NamespacedName: client.ObjectKeyFromObject(o)})
	}
	return toolscache.ResourceEventHandlerFuncs{
		AddFunc: enqueue,
		UpdateFunc: func(oldObj, newObj interface{}) {
			oldO, okOld := oldObj.(client.Object)
			newO, okNew := newObj.(client.Object)
			if !okOld || !okNew {
				return
			}
			deleting := newO.GetDeletionTimestamp() != nil && oldO.GetDeletionTimestamp() == nil
			if deleting || changed.Update(event.UpdateEvent{ObjectOld: oldO, ObjectNew: newO}) {
				enqueue(newO)
			}
		},
		DeleteFunc: enqueue,
	}
}
