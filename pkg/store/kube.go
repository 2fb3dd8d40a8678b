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

package store

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime/schema"
	k8stypes "k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Kube is a ResourceStore backed by the Kubernetes API server
type Kube struct {
	// kc is a Kubernetes client that reads from the informer cache and
	// writes to the API server
	kc client.Client
	// apiReader reads straight from the API server. Reads of the resource
	// being reconciled go through it so that a stale cache never hides the
	// newest spec.
	apiReader client.Reader
	rds       descriptorIndex
}

var _ acktypes.ResourceStore = &Kube{}

// NewKube returns a Kube store for the supplied kinds
func NewKube(
	kc client.Client,
	apiReader client.Reader,
	rds ...acktypes.AWSResourceDescriptor,
) *Kube {
	return &Kube{
		kc:        kc,
		apiReader: apiReader,
		rds:       newDescriptorIndex(rds),
	}
}

// Get returns the custom resource with the supplied kind and key
func (s *Kube) Get(
	ctx context.Context,
	gvk schema.GroupVersionKind,
	key k8stypes.NamespacedName,
) (acktypes.AWSResource, error) {
	rd, err := s.rds.get(gvk)
	if err != nil {
		return nil, err
	}
	obj := rd.EmptyRuntimeObject()
	if err := s.apiReader.Get(ctx, key, obj); err != nil {
		return nil, err
	}
	return rd.ResourceFromRuntimeObject(obj), nil
}

// List returns all custom resources of the supplied kind from the informer
// cache
func (s *Kube) List(
	ctx context.Context,
	gvk schema.GroupVersionKind,
) ([]acktypes.AWSResource, error) {
	rd, err := s.rds.get(gvk)
	if err != nil {
		return nil, err
	}
	listObj, err := s.kc.Scheme().New(gvk.GroupVersion().WithKind(gvk.Kind + "List"))
	if err != nil {
		return nil, err
	}
	list, ok := listObj.(client.ObjectList)
	if !ok {
		return nil, fmt.Errorf("%T is not a list type", listObj)
	}
	if err := s.kc.List(ctx, list); err != nil {
		return nil, err
	}
	items, err := meta.ExtractList(list)
	if err != nil {
		return nil, err
	}
	res := make([]acktypes.AWSResource, 0, len(items))
	for _, item := range items {
		obj, ok := item.(client.Object)
		if !ok {
			return nil, fmt.Errorf("%T is not a client.Object", item)
		}
		res = append(res, rd.ResourceFromRuntimeObject(obj))
	}
	return res, nil
}

// PatchMetadata merge-patches metadata and spec of desired against latest.
// The returned copy carries the new resourceVersion so later patches in the
// same reconcile do not conflict.
func (s *Kube) PatchMetadata(
	ctx context.Context,
	desired acktypes.AWSResource,
	latest acktypes.AWSResource,
) (res acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("store.PatchMetadata")
	defer func() {
		exit(err)
	}()

	patch := client.MergeFrom(latest.RuntimeObject())
	updated := desired.DeepCopy()
	js, err := patch.Data(updated.RuntimeObject())
	if err != nil {
		return latest, err
	}
	if string(js) == "{}" {
		rlog.Debug("no difference found between metadata and spec for desired and latest object.")
		return updated, nil
	}

	rlog.Enter("kc.Patch (metadata + spec)")
	err = patchWithoutCancel(ctx, s.kc, updated.RuntimeObject(), patch)
	if err == nil && rlog.IsDebugEnabled() {
		rlog.Debug("patched resource metadata + spec", "json", patchDocument(patch, desired.RuntimeObject()))
	}
	rlog.Exit("kc.Patch (metadata + spec)", err)
	if err != nil {
		return latest, err
	}
	// The call to Patch() above ends up setting the Status to the stored
	// value. We want to keep the in-memory Status instead.
	restoreStatus(updated, desired)
	return updated, nil
}

// PatchStatus merge-patches the status subresource. Neither argument is
// mutated.
func (s *Kube) PatchStatus(
	ctx context.Context,
	desired acktypes.AWSResource,
	latest acktypes.AWSResource,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("store.PatchStatus")
	defer func() {
		exit(err)
	}()

	rlog.Enter("kc.Patch (status)")
	lobj := latest.DeepCopy().RuntimeObject()
	dobj := desired.DeepCopy().RuntimeObject()
	patch := client.MergeFrom(lobj)
	err = patchStatusWithoutCancel(ctx, s.kc, dobj, patch)
	if err == nil {
		if rlog.IsDebugEnabled() {
			rlog.Debug("patched resource status", "json", patchDocument(patch, desired.RuntimeObject()))
		}
	} else if apierrors.IsNotFound(err) {
		// object already gone, nothing to report
		err = nil
	}
	rlog.Exit("kc.Patch (status)", err)
	return err
}

// patchWithoutCancel performs a patch operation using context.WithoutCancel
// so that a patch already sent is not abandoned when the controller is
// shutting down, while the context values are preserved.
func patchWithoutCancel(
	ctx context.Context,
	kc client.Client,
	obj client.Object,
	patch client.Patch,
) error {
	patchCtx := context.WithoutCancel(ctx)
	return kc.Patch(patchCtx, obj, patch)
}

// patchStatusWithoutCancel is patchWithoutCancel for the status subresource
func patchStatusWithoutCancel(
	ctx context.Context,
	kc client.Client,
	obj client.Object,
	patch client.Patch,
) error {
	patchCtx := context.WithoutCancel(ctx)
	return kc.Status().Patch(patchCtx, obj, patch)
}
