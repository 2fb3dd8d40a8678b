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

// Package store provides the ResourceStore implementations the Reconciler
// reads and persists custom resources through.
package store

import (
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// descriptorIndex maps each kind to its resource descriptor
type descriptorIndex map[schema.GroupVersionKind]acktypes.AWSResourceDescriptor

func newDescriptorIndex(rds []acktypes.AWSResourceDescriptor) descriptorIndex {
	idx := descriptorIndex{}
	for _, rd := range rds {
		idx[rd.GroupVersionKind()] = rd
	}
	return idx
}

func (idx descriptorIndex) get(gvk schema.GroupVersionKind) (acktypes.AWSResourceDescriptor, error) {
	rd, ok := idx[gvk]
	if !ok {
		return nil, fmt.Errorf("no resource descriptor registered for %s", gvk)
	}
	return rd, nil
}

// restoreStatus puts the in-memory Status of src back onto dst after a
// metadata and spec patch returned the stored Status
func restoreStatus(dst, src acktypes.AWSResource) {
	dst.SetStatus(src)
	dst.ReplaceConditions(src.Conditions())
	*dst.Metadata() = *src.DeepCopy().Metadata()
}

// patchDocument renders the merge patch for obj as JSON for debug logs.
// managedFields is dropped; it only adds noise.
func patchDocument(patch client.Patch, obj client.Object) string {
	raw, err := patch.Data(obj)
	if err != nil {
		return ""
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return string(raw)
	}
	if md, ok := doc["metadata"].(map[string]interface{}); ok {
		delete(md, "managedFields")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// toUnstructured returns the field map of a typed object
func toUnstructured(obj runtime.Object) (map[string]interface{}, error) {
	return runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
}
