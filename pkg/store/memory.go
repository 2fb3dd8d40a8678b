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
	"sort"
	"strconv"
	"sync"

	"k8s.io/apimachinery/pkg/api/equality"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	k8stypes "k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/client"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Listener is notified when a stored custom resource is created, has its
// generation bumped or is marked for deletion. Status patches are not
// reported.
type Listener func(schema.GroupVersionKind, k8stypes.NamespacedName)

type objectKey struct {
	gvk schema.GroupVersionKind
	nn  k8stypes.NamespacedName
}

// Memory is an in-process ResourceStore that behaves like the API server for
// the subset the Reconciler relies on: metadata.generation moves only with
// the spec, a custom resource marked for deletion disappears once its last
// finalizer is removed and status lives in its own subresource.
type Memory struct {
	mu        sync.Mutex
	clock     clock.PassiveClock
	rds       descriptorIndex
	objects   map[objectKey]client.Object
	rv        int64
	listeners []Listener
}

var _ acktypes.ResourceStore = &Memory{}

// NewMemory returns an empty Memory store for the supplied kinds
func NewMemory(
	clk clock.PassiveClock,
	rds ...acktypes.AWSResourceDescriptor,
) *Memory {
	return &Memory{
		clock:   clk,
		rds:     newDescriptorIndex(rds),
		objects: map[objectKey]client.Object{},
	}
}

// Subscribe registers l for change notifications
func (s *Memory) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func keyOf(res acktypes.AWSResource, rd acktypes.AWSResourceDescriptor) objectKey {
	mo := res.MetaObject()
	return objectKey{
		gvk: rd.GroupVersionKind(),
		nn:  k8stypes.NamespacedName{Namespace: mo.GetNamespace(), Name: mo.GetName()},
	}
}

func (s *Memory) descriptorFor(res acktypes.AWSResource) (acktypes.AWSResourceDescriptor, error) {
	return s.rds.get(res.RuntimeObject().GetObjectKind().GroupVersionKind())
}

func (s *Memory) nextResourceVersion() string {
	s.rv++
	return strconv.FormatInt(s.rv, 10)
}

func (s *Memory) notify(key objectKey) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(key.gvk, key.nn)
	}
}

// Create stores a new custom resource the way a user's kubectl apply would
func (s *Memory) Create(_ context.Context, res acktypes.AWSResource) error {
	rd, err := s.descriptorFor(res)
	if err != nil {
		return err
	}
	key := keyOf(res, rd)
	obj := res.DeepCopy().RuntimeObject()

	s.mu.Lock()
	if _, ok := s.objects[key]; ok {
		s.mu.Unlock()
		return apierrors.NewAlreadyExists(schema.GroupResource{Group: key.gvk.Group, Resource: key.gvk.Kind}, key.nn.Name)
	}
	obj.SetGeneration(1)
	obj.SetCreationTimestamp(metav1.NewTime(s.clock.Now()))
	obj.SetResourceVersion(s.nextResourceVersion())
	s.objects[key] = obj
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// Update replaces the spec, labels and annotations of a stored custom
// resource. The generation is bumped when the spec changed.
func (s *Memory) Update(_ context.Context, res acktypes.AWSResource) error {
	rd, err := s.descriptorFor(res)
	if err != nil {
		return err
	}
	key := keyOf(res, rd)

	s.mu.Lock()
	stored, ok := s.objects[key]
	if !ok {
		s.mu.Unlock()
		return notFound(key)
	}
	want, err := toUnstructured(res.RuntimeObject())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	have, err := toUnstructured(stored)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	specChanged := !equality.Semantic.DeepEqual(want["spec"], have["spec"])
	have["spec"] = want["spec"]
	obj := rd.EmptyRuntimeObject()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(have, obj); err != nil {
		s.mu.Unlock()
		return err
	}
	obj.SetLabels(res.MetaObject().GetLabels())
	obj.SetAnnotations(res.MetaObject().GetAnnotations())
	if specChanged {
		obj.SetGeneration(stored.GetGeneration() + 1)
	}
	obj.SetResourceVersion(s.nextResourceVersion())
	s.objects[key] = obj
	s.mu.Unlock()

	if specChanged {
		s.notify(key)
	}
	return nil
}

// Delete marks a custom resource for deletion, or removes it right away when
// it carries no finalizer
func (s *Memory) Delete(
	_ context.Context,
	gvk schema.GroupVersionKind,
	nn k8stypes.NamespacedName,
) error {
	key := objectKey{gvk: gvk, nn: nn}
	s.mu.Lock()
	stored, ok := s.objects[key]
	if !ok {
		s.mu.Unlock()
		return notFound(key)
	}
	if len(stored.GetFinalizers()) == 0 {
		delete(s.objects, key)
		s.mu.Unlock()
		s.notify(key)
		return nil
	}
	if stored.GetDeletionTimestamp() == nil {
		now := metav1.NewTime(s.clock.Now())
		stored.SetDeletionTimestamp(&now)
		stored.SetGeneration(stored.GetGeneration() + 1)
		stored.SetResourceVersion(s.nextResourceVersion())
	}
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// Get returns a copy of the stored custom resource
func (s *Memory) Get(
	_ context.Context,
	gvk schema.GroupVersionKind,
	nn k8stypes.NamespacedName,
) (acktypes.AWSResource, error) {
	rd, err := s.rds.get(gvk)
	if err != nil {
		return nil, err
	}
	key := objectKey{gvk: gvk, nn: nn}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.objects[key]
	if !ok {
		return nil, notFound(key)
	}
	return rd.ResourceFromRuntimeObject(stored.DeepCopyObject().(client.Object)), nil
}

// List returns copies of all stored custom resources of the supplied kind,
// ordered by namespace and name
func (s *Memory) List(
	_ context.Context,
	gvk schema.GroupVersionKind,
) ([]acktypes.AWSResource, error) {
	rd, err := s.rds.get(gvk)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	keys := []objectKey{}
	for key := range s.objects {
		if key.gvk == gvk {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].nn.String() < keys[j].nn.String()
	})
	res := make([]acktypes.AWSResource, 0, len(keys))
	for _, key := range keys {
		res = append(res, rd.ResourceFromRuntimeObject(s.objects[key].DeepCopyObject().(client.Object)))
	}
	s.mu.Unlock()
	return res, nil
}

// Exists returns true if a custom resource is stored under the key
func (s *Memory) Exists(gvk schema.GroupVersionKind, nn k8stypes.NamespacedName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[objectKey{gvk: gvk, nn: nn}]
	return ok
}

// PatchMetadata stores the metadata and spec of desired while keeping the
// stored status and the server-owned metadata fields
func (s *Memory) PatchMetadata(
	_ context.Context,
	desired acktypes.AWSResource,
	latest acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	rd, err := s.descriptorFor(desired)
	if err != nil {
		return latest, err
	}
	key := keyOf(desired, rd)

	s.mu.Lock()
	stored, ok := s.objects[key]
	if !ok {
		s.mu.Unlock()
		return latest, notFound(key)
	}
	want, err := toUnstructured(desired.RuntimeObject())
	if err != nil {
		s.mu.Unlock()
		return latest, err
	}
	have, err := toUnstructured(stored)
	if err != nil {
		s.mu.Unlock()
		return latest, err
	}
	specChanged := !equality.Semantic.DeepEqual(want["spec"], have["spec"])
	want["status"] = have["status"]
	obj := rd.EmptyRuntimeObject()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(want, obj); err != nil {
		s.mu.Unlock()
		return latest, err
	}
	obj.SetUID(stored.GetUID())
	obj.SetCreationTimestamp(stored.GetCreationTimestamp())
	obj.SetDeletionTimestamp(stored.GetDeletionTimestamp())
	obj.SetGeneration(stored.GetGeneration())
	if specChanged {
		obj.SetGeneration(stored.GetGeneration() + 1)
	}
	obj.SetResourceVersion(s.nextResourceVersion())
	if obj.GetDeletionTimestamp() != nil && len(obj.GetFinalizers()) == 0 {
		delete(s.objects, key)
	} else {
		s.objects[key] = obj
	}
	s.mu.Unlock()

	if specChanged {
		s.notify(key)
	}
	updated := rd.ResourceFromRuntimeObject(obj.DeepCopyObject().(client.Object))
	restoreStatus(updated, desired)
	return updated, nil
}

// PatchStatus stores the status of desired. A resource that is no longer
// stored is ignored.
func (s *Memory) PatchStatus(
	_ context.Context,
	desired acktypes.AWSResource,
	_ acktypes.AWSResource,
) error {
	rd, err := s.descriptorFor(desired)
	if err != nil {
		return err
	}
	key := keyOf(desired, rd)

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.objects[key]
	if !ok {
		return nil
	}
	want, err := toUnstructured(desired.RuntimeObject())
	if err != nil {
		return err
	}
	have, err := toUnstructured(stored)
	if err != nil {
		return err
	}
	have["status"] = want["status"]
	obj := rd.EmptyRuntimeObject()
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(have, obj); err != nil {
		return err
	}
	obj.SetResourceVersion(s.nextResourceVersion())
	s.objects[key] = obj
	return nil
}

func notFound(key objectKey) error {
	return apierrors.NewNotFound(
		schema.GroupResource{Group: key.gvk.Group, Resource: key.gvk.Kind},
		key.nn.Name,
	)
}
