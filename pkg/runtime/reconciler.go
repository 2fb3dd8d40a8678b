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
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"
	"github.com/moby/locker"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	k8stypes "k8s.io/apimachinery/pkg/types"
	ctrlrt "sigs.k8s.io/controller-runtime"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/annotation"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackcondition "github.com/aws-controllers-k8s/route53resolver-controller/pkg/condition"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/featuregate"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/plan"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/requeue"
	ackrtcache "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/cache"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

const (
	// drift resync after a successful reconcile, unless the kind has a
	// --reconcile-resource-resync-seconds override
	defaultResyncPeriod = 10 * time.Hour
	// readOneAfterCreateTimeout bounds how long a freshly created backend
	// resource may stay invisible to ReadOne
	readOneAfterCreateTimeout = 10 * time.Second
)

// resourceReconciler drives every custom resource of one Route53 Resolver
// kind through its lifecycle states. The Dispatcher guarantees it never
// sees two requests for the same object at once.
type resourceReconciler struct {
	sc      acktypes.ServiceController
	rmf     acktypes.AWSResourceManagerFactory
	rd      acktypes.AWSResourceDescriptor
	store   acktypes.ResourceStore
	log     logr.Logger
	cfg     ackcfg.Config
	metrics *ackmetrics.Metrics
	cache   *ackrtcache.Caches
	// scheduler turns the outcome of a reconcile into the next requeue
	scheduler *requeue.Scheduler
	// dependents are the descriptors of kinds whose resources may reference
	// resources of this kind
	dependents   []acktypes.AWSResourceDescriptor
	resyncPeriod time.Duration
	// readOneBackoff returns the policy used to wait for a freshly created
	// resource to become readable
	readOneBackoff func() backoff.BackOff
	// locks holds one lock per namespace/name. Reconcile and Sync both
	// take it, so a direct Sync never overlaps a dispatched reconcile.
	locks *locker.Locker
}

// lockKey blocks until the caller owns key and returns the release func
func (r *resourceReconciler) lockKey(key string) func() {
	r.locks.Lock(key)
	return func() {
		if err := r.locks.Unlock(key); err != nil {
			r.log.Error(err, "releasing resource lock", "key", key)
		}
	}
}

// syncState is carried through one reconcile of one resource: the resource
// manager bound to the resource's account and region, and the version of
// the resource the store last acknowledged. Status patches are computed
// against that version so a field that changes and changes back within one
// reconcile is still written.
type syncState struct {
	rm     acktypes.AWSResourceManager
	store  acktypes.ResourceStore
	stored acktypes.AWSResource
}

func newSyncState(
	rm acktypes.AWSResourceManager,
	store acktypes.ResourceStore,
	stored acktypes.AWSResource,
) *syncState {
	return &syncState{rm: rm, store: store, stored: stored.DeepCopy()}
}

// patchStatus persists the Status of res
func (st *syncState) patchStatus(ctx context.Context, res acktypes.AWSResource) error {
	if err := st.store.PatchStatus(ctx, res, st.stored); err != nil {
		return errors.Wrap(err, "patching resource status")
	}
	st.stored = withStatusOf(st.stored, res)
	return nil
}

// patchMetadata persists the metadata and Spec of res and returns the
// stored resource carrying the in-memory Status of res
func (st *syncState) patchMetadata(
	ctx context.Context,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	updated, err := st.store.PatchMetadata(ctx, res, st.stored)
	if err != nil {
		return res, errors.Wrap(err, "patching resource metadata")
	}
	st.stored = withStatusOf(updated, st.stored)
	return updated, nil
}

// GroupVersionKind returns the Kubernetes GroupVersionKind that this
// reconciler is responsible for.
func (r *resourceReconciler) GroupVersionKind() schema.GroupVersionKind {
	return r.rd.GroupVersionKind()
}

// Reconcile loads the named resource and runs one lifecycle step. The
// outcome is written to status and turned into a requeue decision.
func (r *resourceReconciler) Reconcile(ctx context.Context, req ctrlrt.Request) (ctrlrt.Result, error) {
	defer r.lockKey(req.NamespacedName.String())()
	start := time.Now()
	kind := r.rd.GroupVersionKind().Kind
	desired, err := r.store.Get(ctx, r.rd.GroupVersionKind(), req.NamespacedName)
	if err != nil {
		if apierrors.IsNotFound(err) {
			// resource was deleted in the meantime. Any pending requeue for
			// it was superseded by the event that brought us here.
			r.log.V(1).Info("ignoring reconcile request for missing resource", "kind", kind, "key", req.NamespacedName.String())
			return ctrlrt.Result{}, nil
		}
		return ctrlrt.Result{}, err
	}

	rlog := ackrtlog.NewResourceLogger(r.log, desired)
	ctx = ackrtlog.IntoContext(ctx, rlog)

	if r.isStickyFailed(desired) {
		rlog.Debug("resource is failed and its spec did not change; skipping")
		return ctrlrt.Result{}, nil
	}

	acctID := r.getOwnerAccountID(desired)
	region := r.getRegion(desired)
	endpointURL := r.getEndpointURL(desired)
	gvk := r.rd.GroupVersionKind()

	rlog.WithValues("account", acctID, "region", region)

	awsCfg, err := r.sc.NewAWSConfig(
		ctx, region, endpointURL, ackv1alpha1.AWSResourceName(r.cfg.RoleARN), gvk,
	)
	if err != nil {
		return ctrlrt.Result{}, errors.Wrap(err, "building AWS config")
	}
	rm, err := r.rmf.ManagerFor(r.cfg, awsCfg, r.log, r.metrics, acctID, region)
	if err != nil {
		return ctrlrt.Result{}, errors.Wrap(err, "building resource manager")
	}

	st := newSyncState(rm, r.store, desired)
	latest, err := r.reconcile(ctx, st, desired)
	result, outcome, err := r.HandleReconcileError(ctx, st, latest, err)
	r.metrics.RecordReconcile(kind, outcome.String(), time.Since(start))
	return result, err
}

// isStickyFailed returns true when the resource ended in the Failed state
// for its current generation. Only a spec change moves it out of Failed.
func (r *resourceReconciler) isStickyFailed(res acktypes.AWSResource) bool {
	if res.IsBeingDeleted() {
		return false
	}
	md := res.Metadata()
	return md.State == ackv1alpha1.StateFailed &&
		md.ObservedGeneration == res.MetaObject().GetGeneration()
}

// reconcile routes to deletion or sync and returns the latest observed copy
func (r *resourceReconciler) reconcile(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	if desired.IsBeingDeleted() {
		return r.deleteResource(ctx, st, desired)
	}
	return r.sync(ctx, st, desired)
}

// Sync runs the create, adopt, observe or update path for desired and
// returns the latest observed copy.
func (r *resourceReconciler) Sync(
	ctx context.Context,
	rm acktypes.AWSResourceManager,
	desired acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	mo := desired.MetaObject()
	defer r.lockKey(k8stypes.NamespacedName{Namespace: mo.GetNamespace(), Name: mo.GetName()}.String())()
	return r.sync(ctx, newSyncState(rm, r.store, desired), desired)
}

func (r *resourceReconciler) sync(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
) (latest acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.Sync")
	defer func() {
		exit(err)
	}()

	latest = desired.DeepCopy()
	md := latest.Metadata()
	if md.State == ackv1alpha1.StateFailed {
		// a new generation of a failed resource starts over
		md.RetryCount = 0
		md.State = ackv1alpha1.StateAbsent
		if latest.Identifiers().ID() != "" {
			md.State = ackv1alpha1.StateSyncing
		}
	}
	if md.State == "" {
		md.State = ackv1alpha1.StateAbsent
	}

	if err = latest.Validate(); err != nil {
		return latest, ackerr.NewPermanent(err)
	}

	if r.isReadOnly(latest) {
		return r.observeResource(ctx, st, latest)
	}

	var observed acktypes.AWSResource
	if latest.Identifiers().ID() == "" {
		adoption, err := annotation.GetAdoption(latest.MetaObject())
		if err != nil {
			return latest, ackerr.NewPermanent(err)
		}
		adoptID := ""
		if adoption != nil {
			if !r.cfg.FeatureGates.IsEnabled(featuregate.ResourceAdoption) {
				return latest, ackerr.NewPermanent(ackerr.AdoptionNotEnabled)
			}
			if adoption.ID == "" {
				return latest, ackerr.NewAdoptionMismatch(ackerr.AdoptionFieldsMissing)
			}
			adoptID = adoption.ID
		}
		p, err := plan.Compute(r.rd, latest, nil, adoptID)
		if err != nil {
			return latest, err
		}
		if op, ok := p.Get(plan.OperationAdopt); ok {
			latest, observed, err = r.adoptResource(ctx, st, latest, op.AdoptID, adoption.OrCreate())
		} else {
			latest, observed, err = r.createResource(ctx, st, latest)
		}
		if err != nil {
			return latest, err
		}
	}
	return r.updateResource(ctx, st, latest, observed)
}

// createResource marks the CR as managed by ACK, calls one or more AWS APIs
// to create the backend AWS resource and patches the CR's Status fields.
//
// The resource ID is persisted as soon as the provider returns it so that a
// crash between two calls never creates a second backend resource.
func (r *resourceReconciler) createResource(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
) (latest, observed acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.createResource")
	defer func() {
		exit(err)
	}()

	latest = desired
	latest.Metadata().State = ackv1alpha1.StateCreating
	if !r.rd.IsManaged(latest) {
		rlog.Enter("rm.MarkManaged")
		r.rd.MarkManaged(latest)
		latest, err = st.patchMetadata(ctx, latest)
		rlog.Exit("rm.MarkManaged", err)
		if err != nil {
			return latest, nil, err
		}
	}
	if err = st.patchStatus(ctx, latest); err != nil {
		return latest, nil, err
	}

	toCreate := latest.DeepCopy()
	toCreate.SetTags(r.desiredTags(latest))

	rlog.Enter("rm.Create")
	created, err := st.rm.Create(ctx, toCreate)
	rlog.Exit("rm.Create", err)
	if err != nil {
		if ackcompare.IsNotNil(created) && created.Identifiers().ID() != "" {
			// a partial create still bound a backend resource
			latest.SetStatus(created)
			latest.Metadata().State = ackv1alpha1.StateSyncing
			if perr := st.patchStatus(ctx, latest); perr != nil {
				rlog.Info("failed to persist identifier of partially created resource", "error", perr.Error())
			}
		}
		return latest, nil, err
	}
	latest.SetStatus(created)
	latest.Metadata().State = ackv1alpha1.StateSyncing
	if err = st.patchStatus(ctx, latest); err != nil {
		return latest, nil, err
	}
	rlog.Info("created new resource", "id", latest.Identifiers().ID())

	rlog.Enter("rm.ReadOne")
	observed, err = st.rm.ReadOne(ctx, latest)
	rlog.Exit("rm.ReadOne", err)
	if err != nil {
		if !ackerr.IsNotFound(err) {
			return latest, nil, err
		}
		// The backend resource may not be readable yet
		if observed, err = r.delayedReadOneAfterCreate(ctx, st.rm, latest); err != nil {
			return latest, nil, err
		}
	}
	latest.SetStatus(observed)
	return latest, observed, nil
}

// delayedReadOneAfterCreate retries ReadOne with backoff until the freshly
// created resource becomes visible. A resource that stays invisible ends the
// reconcile with a transitional NotFound error.
func (r *resourceReconciler) delayedReadOneAfterCreate(
	ctx context.Context,
	rm acktypes.AWSResourceManager,
	res acktypes.AWSResource,
) (latest acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.delayedReadOneAfterCreate")
	defer func() {
		exit(err)
	}()

	attempts := 0
	readOne := func() (acktypes.AWSResource, error) {
		attempts++
		rlog.Debug("attempting ReadOne after create", "attempt", attempts)
		observed, err := rm.ReadOne(ctx, res)
		if err != nil && !ackerr.IsNotFound(err) {
			return nil, backoff.Permanent(err)
		}
		return observed, err
	}
	latest, err = backoff.RetryWithData(readOne, backoff.WithContext(r.readOneBackoff(), ctx))
	if err != nil {
		if ackerr.IsNotFound(err) {
			return res, ackerr.NewReadOneFailAfterCreate(attempts)
		}
		return res, err
	}
	return latest, nil
}

// defaultReadOneBackoff is the exponential policy used after create
func defaultReadOneBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = readOneAfterCreateTimeout
	return b
}

// updateResource brings the bound backend resource in line with desired.
// The supplied observed state is used when the caller already read it.
func (r *resourceReconciler) updateResource(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
	observed acktypes.AWSResource,
) (latest acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.updateResource")
	defer func() {
		exit(err)
	}()

	latest = desired
	if !r.rd.IsManaged(latest) {
		// bound but lost its finalizer, e.g. after a retain/unmanage race
		r.rd.MarkManaged(latest)
		if latest, err = st.patchMetadata(ctx, latest); err != nil {
			return latest, err
		}
	}

	if ackcompare.IsNil(observed) {
		rlog.Enter("rm.ReadOne")
		observed, err = st.rm.ReadOne(ctx, latest)
		rlog.Exit("rm.ReadOne", err)
		if err != nil {
			if ackerr.IsNotFound(err) {
				// The bound backend resource is gone. It is never recreated
				// silently under the same custom resource.
				return latest, ackerr.NewNotFoundTransitional(
					errors.Wrapf(ackerr.NotFound, "backend resource %s", latest.Identifiers().ID()),
				)
			}
			return latest, err
		}
	}

	arn := latest.Identifiers().ARN()
	if arn == nil {
		arn = observed.Identifiers().ARN()
	}
	if arn != nil {
		observedTags, err := st.rm.ListTags(ctx, *arn)
		if err != nil {
			return latest, err
		}
		observed.SetTags(observedTags)
	} else {
		observed.SetTags(r.desiredTags(latest))
	}

	toSync := latest.DeepCopy()
	toSync.SetTags(r.desiredTags(latest))
	p, err := plan.Compute(r.rd, toSync, observed, "")
	latest.SetStatus(observed)
	if err != nil {
		return latest, err
	}

	md := latest.Metadata()
	if !p.Empty() || md.State != ackv1alpha1.StateSynced {
		md.State = ackv1alpha1.StateSyncing
	}
	if !p.Empty() {
		rlog.Debug("desired resource state has changed", "operations", p.Kinds())
	}

	for _, op := range p.Operations {
		switch op.Kind {
		case plan.OperationUpdate:
			rlog.Enter("rm.Update")
			updated, err := st.rm.Update(ctx, toSync, observed, op.Delta)
			rlog.Exit("rm.Update", err)
			if ackcompare.IsNotNil(updated) {
				latest.SetStatus(updated)
			}
			if err != nil {
				return latest, err
			}
			if err = st.patchStatus(ctx, latest); err != nil {
				return latest, err
			}
			rlog.Info("updated resource", "fields", op.Delta.Paths())
		case plan.OperationRetag:
			rlog.Enter("rm.SetTags")
			err := st.rm.SetTags(ctx, *arn, op.Added, op.Removed)
			rlog.Exit("rm.SetTags", err)
			if err != nil {
				return latest, err
			}
			rlog.Debug("updated resource tags", "added", op.Added.Keys(), "removed", op.Removed)
		}
	}

	rlog.Enter("rm.IsSynced")
	synced, err := st.rm.IsSynced(ctx, latest)
	rlog.Exit("rm.IsSynced", err)
	if err != nil {
		return latest, err
	}
	if synced {
		md.State = ackv1alpha1.StateSynced
		ackcondition.SetSynced(latest, corev1.ConditionTrue, &ackcondition.SyncedMessage, nil)
	} else {
		md.State = ackv1alpha1.StateSyncing
		ackcondition.SetSynced(latest, corev1.ConditionFalse, &ackcondition.NotSyncedMessage, nil)
	}
	return latest, nil
}

// observeResource reads the backend resource of a read-only custom resource
// into its Status and reports whether it matches the Spec. It never calls a
// mutating provider operation.
func (r *resourceReconciler) observeResource(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
) (latest acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.observeResource")
	defer func() {
		exit(err)
	}()

	latest = desired
	probe := latest
	if latest.Identifiers().ID() == "" {
		adoption, err := annotation.GetAdoption(latest.MetaObject())
		if err != nil {
			return latest, ackerr.NewPermanent(err)
		}
		if adoption == nil || adoption.ID == "" {
			return latest, ackerr.NewPermanent(ackerr.ReadOnlyNoIdentifier)
		}
		probe = latest.DeepCopy()
		if err = probe.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: adoption.ID}); err != nil {
			return latest, ackerr.NewPermanent(err)
		}
	}

	rlog.Enter("rm.ReadOne")
	observed, err := st.rm.ReadOne(ctx, probe)
	rlog.Exit("rm.ReadOne", err)
	if err != nil {
		if ackerr.IsNotFound(err) {
			return latest, ackerr.NewNotFoundTransitional(
				errors.Wrapf(ackerr.NotFound, "read-only backend resource %s", probe.Identifiers().ID()),
			)
		}
		return latest, err
	}
	if arn := observed.Identifiers().ARN(); arn != nil {
		observedTags, err := st.rm.ListTags(ctx, *arn)
		if err != nil {
			return latest, err
		}
		observed.SetTags(observedTags)
	}

	latest.SetStatus(observed)
	p, err := plan.Compute(r.rd, latest, observed, "")
	if err != nil || !p.Empty() {
		reason := ackerr.ReadOnlyOutOfSync.Error()
		if err != nil {
			reason = err.Error()
		}
		latest.Metadata().State = ackv1alpha1.StateSyncing
		ackcondition.SetSynced(latest, corev1.ConditionFalse, &ackcondition.ReadOnlyMessage, &reason)
		return latest, nil
	}
	latest.Metadata().State = ackv1alpha1.StateSynced
	ackcondition.SetSynced(latest, corev1.ConditionTrue, &ackcondition.SyncedMessage, nil)
	return latest, nil
}

// deleteResource ensures that the supplied AWSResource's backing API
// resource is destroyed along with all child dependent resources, unless the
// deletion policy retains it.
func (r *resourceReconciler) deleteResource(
	ctx context.Context,
	st *syncState,
	current acktypes.AWSResource,
) (latest acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.deleteResource")
	defer func() {
		exit(err)
	}()

	latest = current.DeepCopy()
	if !r.rd.IsManaged(latest) {
		// Nothing of ours holds the custom resource
		return latest, nil
	}

	md := latest.Metadata()
	if r.getDeletionPolicy(latest) == ackv1alpha1.DeletionPolicyRetain {
		rlog.Info("AWS resource will not be deleted - deletion policy set to retain")
		md.State = ackv1alpha1.StateRetained
		if err = st.patchStatus(ctx, latest); err != nil {
			return latest, err
		}
		return r.setResourceUnmanaged(ctx, st, latest)
	}

	if latest.Identifiers().ID() == "" {
		// never created
		return r.setResourceUnmanaged(ctx, st, latest)
	}

	md.State = ackv1alpha1.StateDeleting
	if r.cfg.FeatureGates.IsEnabled(featuregate.DependencyOrderedDeletion) {
		dependents, err := r.dependentsOf(ctx, latest)
		if err != nil {
			return latest, err
		}
		if len(dependents) > 0 {
			rlog.Info("waiting for dependent resources to be deleted", "dependents", dependents)
			return latest, requeue.NeededAfter(
				errors.Wrapf(ackerr.DependentsExist, "%s", strings.Join(dependents, ", ")),
				requeue.DefaultRequeueAfterDuration,
			)
		}
	}
	if err = st.patchStatus(ctx, latest); err != nil {
		return latest, err
	}

	rlog.Enter("rm.ReadOne")
	observed, err := st.rm.ReadOne(ctx, latest)
	rlog.Exit("rm.ReadOne", err)
	if err != nil {
		if ackerr.IsNotFound(err) {
			// already gone upstream
			return r.setResourceUnmanaged(ctx, st, latest)
		}
		return latest, err
	}

	rlog.Enter("rm.Delete")
	err = st.rm.Delete(ctx, observed)
	rlog.Exit("rm.Delete", err)
	if err != nil && !ackerr.IsNotFound(err) {
		return latest, err
	}
	rlog.Info("deleted resource")
	return r.setResourceUnmanaged(ctx, st, latest)
}

// dependentsOf returns the namespaced names of the custom resources that
// reference the backend resource bound to res
func (r *resourceReconciler) dependentsOf(
	ctx context.Context,
	res acktypes.AWSResource,
) ([]string, error) {
	kind := r.rd.GroupVersionKind().Kind
	id := res.Identifiers().ID()
	var names []string
	for _, drd := range r.dependents {
		items, err := r.store.List(ctx, drd.GroupVersionKind())
		if err != nil {
			return nil, errors.Wrapf(err, "listing %s resources", drd.GroupVersionKind().Kind)
		}
		for _, item := range items {
			if lo.ContainsBy(drd.References(item), func(ref acktypes.ResourceReference) bool {
				return ref.Kind == kind && ref.ID == id
			}) {
				mo := item.MetaObject()
				names = append(names, fmt.Sprintf("%s %s/%s", drd.GroupVersionKind().Kind, mo.GetNamespace(), mo.GetName()))
			}
		}
	}
	return names, nil
}

// setResourceUnmanaged removes a finalizer from the underlying CR in order
// to let the CR be deleted by Kubernetes
func (r *resourceReconciler) setResourceUnmanaged(
	ctx context.Context,
	st *syncState,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	rlog := ackrtlog.FromContext(ctx)
	rlog.Enter("rm.MarkUnmanaged")
	latest := res.DeepCopy()
	r.rd.MarkUnmanaged(latest)
	latest, err := st.patchMetadata(ctx, latest)
	rlog.Exit("rm.MarkUnmanaged", err)
	return latest, err
}

// HandleReconcileError turns the result of one reconcile into the
// resource's Status and the controller-runtime Result. The Status is always
// persisted, also when reconcile failed.
func (r *resourceReconciler) HandleReconcileError(
	ctx context.Context,
	st *syncState,
	latest acktypes.AWSResource,
	err error,
) (ctrlrt.Result, requeue.Outcome, error) {
	rlog := ackrtlog.FromContext(ctx)
	md := latest.Metadata()

	var outcome requeue.Outcome
	var requeueAfter *requeue.RequeueNeededAfter
	switch {
	case err == nil:
		outcome = requeue.OutcomeInProgress
		if ackcondition.IsSynced(latest) || r.isReadOnly(latest) {
			outcome = requeue.OutcomeSuccess
		}
	case errors.As(err, &requeueAfter):
		outcome = requeue.OutcomeInProgress
	case ackerr.IsPermanent(err):
		outcome = requeue.OutcomePermanent
	default:
		outcome = requeue.OutcomeTransient
	}

	decision := r.scheduler.Decide(outcome, md.RetryCount)
	if requeueAfter != nil && requeueAfter.Duration() > 0 {
		decision.After = requeueAfter.Duration()
	}

	switch {
	case decision.Action == requeue.ActionTerminal:
		if outcome == requeue.OutcomeTransient {
			err = ackerr.NewMaxRetriesExceeded(decision.RetryCount-1, err)
		}
		msg := err.Error()
		md.State = ackv1alpha1.StateFailed
		md.RetryCount = decision.RetryCount
		ackcondition.SetTerminal(latest, corev1.ConditionTrue, &msg, nil)
		ackcondition.SetSynced(latest, corev1.ConditionFalse, &ackcondition.NotSyncedMessage, &msg)
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeRecoverable)
		rlog.Info("resource failed permanently", "error", msg)
	case outcome == requeue.OutcomeTransient:
		msg := err.Error()
		md.RetryCount = decision.RetryCount
		ackcondition.SetRecoverable(latest, corev1.ConditionTrue, &msg, nil)
		ackcondition.SetSynced(latest, corev1.ConditionUnknown, &ackcondition.UnknownSyncMessage, &msg)
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeTerminal)
		rlog.Info("reconcile failed, will retry", "error", msg, "retry", md.RetryCount, "after", decision.After)
	case err != nil:
		// in progress, waiting on something outside the resource
		msg := err.Error()
		ackcondition.SetSynced(latest, corev1.ConditionFalse, &ackcondition.NotSyncedMessage, &msg)
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeTerminal)
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeRecoverable)
		rlog.Debug("requeueing", "reason", msg, "after", decision.After)
	default:
		if outcome == requeue.OutcomeSuccess {
			md.RetryCount = 0
		}
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeTerminal)
		ackcondition.Remove(latest, ackv1alpha1.ConditionTypeRecoverable)
	}
	md.ObservedGeneration = latest.MetaObject().GetGeneration()

	if !r.rd.IsManaged(latest) && latest.IsBeingDeleted() {
		// the finalizer is gone and so is the custom resource
		return ctrlrt.Result{}, outcome, nil
	}
	if perr := st.patchStatus(ctx, latest); perr != nil {
		rlog.Info("failed to persist resource status", "error", perr.Error())
		return ctrlrt.Result{}, outcome, perr
	}

	if decision.Action == requeue.ActionRequeueAfter {
		return ctrlrt.Result{RequeueAfter: decision.After}, outcome, nil
	}
	return ctrlrt.Result{}, outcome, nil
}

// desiredTags returns the user tags of res with the controller's default
// tags applied
func (r *resourceReconciler) desiredTags(res acktypes.AWSResource) acktags.Tags {
	var md acktypes.ServiceControllerMetadata
	if r.sc != nil {
		md = r.sc.GetMetadata()
	}
	return acktags.WithDefaults(res.Tags(), GetDefaultTags(&r.cfg, res.RuntimeObject(), md))
}

// isReadOnly returns true when the resource is observed only
func (r *resourceReconciler) isReadOnly(res acktypes.AWSResource) bool {
	return r.cfg.FeatureGates.IsEnabled(featuregate.ReadOnlyResources) &&
		annotation.IsReadOnly(res.MetaObject())
}

// getResyncPeriod returns the period with which a synced resource of the
// reconciler's kind is reconciled again. The first positive value wins:
// the per-resource configuration, the resource manager factory's value, the
// default configuration and finally defaultResyncPeriod.
func getResyncPeriod(rmf acktypes.AWSResourceManagerFactory, cfg ackcfg.Config) time.Duration {
	kind := rmf.ResourceDescriptor().GroupVersionKind().Kind
	if d, ok := cfg.GetReconcileResourceResyncSeconds(kind); ok && d > 0 {
		return d
	}
	if s := rmf.RequeueOnSuccessSeconds(); s > 0 {
		return time.Duration(s) * time.Second
	}
	if cfg.ReconcileDefaultResyncSeconds > 0 {
		return time.Duration(cfg.ReconcileDefaultResyncSeconds) * time.Second
	}
	return defaultResyncPeriod
}

// newScheduler returns the requeue Scheduler configured by cfg
func newScheduler(cfg ackcfg.Config, resyncPeriod time.Duration) *requeue.Scheduler {
	return requeue.NewScheduler(
		acktypes.Exponential{
			Initial:  cfg.BackoffInitial,
			Factor:   cfg.BackoffFactor,
			MaxDelay: cfg.BackoffMax,
		},
		cfg.BackoffJitter,
		cfg.MaxRetries,
		resyncPeriod,
	)
}

// NewReconciler returns a new reconciler object for the resources managed
// by rmf. dependents are the descriptors of the kinds that may reference
// resources of this kind.
func NewReconciler(
	sc acktypes.ServiceController,
	rmf acktypes.AWSResourceManagerFactory,
	store acktypes.ResourceStore,
	log logr.Logger,
	cfg ackcfg.Config,
	metrics *ackmetrics.Metrics,
	caches *ackrtcache.Caches,
	dependents ...acktypes.AWSResourceDescriptor,
) acktypes.AWSResourceReconciler {
	return newResourceReconciler(sc, rmf, store, log, cfg, metrics, caches, dependents...)
}

func newResourceReconciler(
	sc acktypes.ServiceController,
	rmf acktypes.AWSResourceManagerFactory,
	store acktypes.ResourceStore,
	log logr.Logger,
	cfg ackcfg.Config,
	metrics *ackmetrics.Metrics,
	caches *ackrtcache.Caches,
	dependents ...acktypes.AWSResourceDescriptor,
) *resourceReconciler {
	rd := rmf.ResourceDescriptor()
	resyncPeriod := getResyncPeriod(rmf, cfg)
	return &resourceReconciler{
		sc:             sc,
		rmf:            rmf,
		rd:             rd,
		store:          store,
		log:            log.WithName("ackrt").WithValues("kind", rd.GroupVersionKind().Kind),
		cfg:            cfg,
		metrics:        metrics,
		cache:          caches,
		scheduler:      newScheduler(cfg, resyncPeriod),
		dependents:     dependents,
		resyncPeriod:   resyncPeriod,
		readOneBackoff: defaultReadOneBackoff,
		locks:          locker.New(),
	}
}
