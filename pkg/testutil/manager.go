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

package testutil

import (
	"context"
	"fmt"
	"sync"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcompare "github.com/aws-controllers-k8s/route53resolver-controller/pkg/compare"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	acktags "github.com/aws-controllers-k8s/route53resolver-controller/pkg/tags"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Operation names used by Manager for call recording and error injection
const (
	OpReadOne  = "ReadOne"
	OpCreate   = "Create"
	OpUpdate   = "Update"
	OpDelete   = "Delete"
	OpListTags = "ListTags"
	OpSetTags  = "SetTags"
	OpIsSynced = "IsSynced"
)

// Manager is an in-memory AWSResourceManager. Backend objects are keyed by
// provider ID and their tags by ARN.
type Manager struct {
	mu      sync.Mutex
	prefix  string
	nextID  int
	objects map[string]acktypes.AWSResource
	tags    map[string]acktags.Tags
	errs    map[string][]error
	pending map[string]int
	hidden  map[string]int
	calls   []string
	// untagged collects every key SetTags was asked to remove
	untagged []string
}

// NewManager returns an empty Manager that mints IDs with the supplied
// prefix
func NewManager(idPrefix string) *Manager {
	return &Manager{
		prefix:  idPrefix,
		objects: map[string]acktypes.AWSResource{},
		tags:    map[string]acktags.Tags{},
		errs:    map[string][]error{},
		pending: map[string]int{},
		hidden:  map[string]int{},
	}
}

// FailNext queues errors returned by the next calls of the supplied
// operation, one per call
func (m *Manager) FailNext(op string, errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = append(m.errs[op], errs...)
}

// HideAfterCreate makes the next n ReadOne calls after a Create report the
// new object as missing
func (m *Manager) HideAfterCreate(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden[""] = n
}

// SetPending makes IsSynced report false n times for the supplied ID
func (m *Manager) SetPending(id string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[id] = n
}

// Seed stores a backend object created outside the controller and returns
// its ID
func (m *Manager) Seed(res acktypes.AWSResource, tags acktags.Tags) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj := m.bind(res.DeepCopy())
	m.tags[arnOf(obj)] = tags.Copy()
	return obj.Identifiers().ID()
}

// Remove deletes a backend object behind the controller's back
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, id)
}

// Get returns a copy of the backend object with the supplied ID
func (m *Manager) Get(id string) (acktypes.AWSResource, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[id]
	if !ok {
		return nil, false
	}
	return obj.DeepCopy(), true
}

// TagsOf returns the backend tags of the object with the supplied ID
func (m *Manager) TagsOf(id string) acktags.Tags {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[id]
	if !ok {
		return nil
	}
	return m.tags[arnOf(obj)].Copy()
}

// Len returns the number of backend objects
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Calls returns the operations called so far, in order
func (m *Manager) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times the supplied operation was called
func (m *Manager) CallCount(op string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// RemovedTagKeys returns the keys passed to SetTags for removal, in call
// order
func (m *Manager) RemovedTagKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.untagged...)
}

// ResetCalls forgets the recorded calls and tag removals
func (m *Manager) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.untagged = nil
}

func (m *Manager) record(op string) error {
	m.calls = append(m.calls, op)
	if queued := m.errs[op]; len(queued) > 0 {
		m.errs[op] = queued[1:]
		return queued[0]
	}
	return nil
}

func (m *Manager) bind(res acktypes.AWSResource) acktypes.AWSResource {
	m.nextID++
	id := fmt.Sprintf("%s-%d", m.prefix, m.nextID)
	arn := ackv1alpha1.AWSResourceName("arn:aws:route53resolver:us-west-2:123456789012:" + id)
	if err := res.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: id, ARN: &arn}); err != nil {
		panic(err)
	}
	m.objects[id] = res
	return res
}

func arnOf(res acktypes.AWSResource) string {
	if arn := res.Identifiers().ARN(); arn != nil {
		return *arn
	}
	return ""
}

// ReadOne returns a copy of the backend object bound to the resource
func (m *Manager) ReadOne(
	ctx context.Context,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpReadOne); err != nil {
		return nil, err
	}
	id := res.Identifiers().ID()
	obj, ok := m.objects[id]
	if id == "" || !ok {
		return nil, ackerr.NotFound
	}
	if m.hidden[id] > 0 {
		m.hidden[id]--
		return nil, ackerr.NotFound
	}
	return obj.DeepCopy(), nil
}

// Create binds a fresh ID to a copy of the resource and stores it
func (m *Manager) Create(
	ctx context.Context,
	res acktypes.AWSResource,
) (acktypes.AWSResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpCreate); err != nil {
		return nil, err
	}
	obj := m.bind(res.DeepCopy())
	m.tags[arnOf(obj)] = res.Tags()
	if n := m.hidden[""]; n > 0 {
		m.hidden[obj.Identifiers().ID()] = n
		delete(m.hidden, "")
	}
	return obj.DeepCopy(), nil
}

// Update replaces the stored object with a copy of desired
func (m *Manager) Update(
	ctx context.Context,
	desired acktypes.AWSResource,
	latest acktypes.AWSResource,
	delta *ackcompare.Delta,
) (acktypes.AWSResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpUpdate); err != nil {
		return nil, err
	}
	id := latest.Identifiers().ID()
	stored, ok := m.objects[id]
	if !ok {
		return nil, ackerr.NotFound
	}
	obj := desired.DeepCopy()
	obj.SetStatus(stored)
	m.objects[id] = obj
	return obj.DeepCopy(), nil
}

// Delete removes the backend object bound to the resource
func (m *Manager) Delete(
	ctx context.Context,
	res acktypes.AWSResource,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpDelete); err != nil {
		return err
	}
	id := res.Identifiers().ID()
	if _, ok := m.objects[id]; !ok {
		return ackerr.NotFound
	}
	delete(m.objects, id)
	return nil
}

// ListTags returns the tags stored for the ARN
func (m *Manager) ListTags(
	ctx context.Context,
	arn string,
) (acktags.Tags, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpListTags); err != nil {
		return nil, err
	}
	return m.tags[arn].Copy(), nil
}

// SetTags adds and removes tags stored for the ARN
func (m *Manager) SetTags(
	ctx context.Context,
	arn string,
	added acktags.Tags,
	removed []string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpSetTags); err != nil {
		return err
	}
	m.untagged = append(m.untagged, removed...)
	t := m.tags[arn].Copy()
	for _, k := range removed {
		delete(t, k)
	}
	for k, v := range added {
		t[k] = v
	}
	m.tags[arn] = t
	return nil
}

// IsSynced reports false while the ID has pending IsSynced calls left
func (m *Manager) IsSynced(
	ctx context.Context,
	res acktypes.AWSResource,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(OpIsSynced); err != nil {
		return false, err
	}
	id := res.Identifiers().ID()
	if m.pending[id] > 0 {
		m.pending[id]--
		return false, nil
	}
	return true, nil
}
