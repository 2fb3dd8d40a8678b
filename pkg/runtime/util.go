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
	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/annotation"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// getOwnerAccountID returns the AWS account that owns the supplied resource.
// The function looks to the common `Status.ACKResourceState` object,
// followed by the AWS account the controller runs in.
func (r *resourceReconciler) getOwnerAccountID(
	res acktypes.AWSResource,
) ackv1alpha1.AWSAccountID {
	if acctID := res.Identifiers().OwnerAccountID(); acctID != nil && *acctID != "" {
		return *acctID
	}
	return ackv1alpha1.AWSAccountID(r.cfg.AccountID)
}

// getRegion returns the AWS region that the given resource is in or should
// be created in. The region recorded in the resource's Status wins, then the
// region annotation of the resource, then the default region of its
// Namespace and finally the region of the controller configuration.
func (r *resourceReconciler) getRegion(
	res acktypes.AWSResource,
) ackv1alpha1.AWSRegion {
	if region := res.Identifiers().Region(); region != nil && *region != "" {
		return *region
	}
	if region := annotation.GetRegion(res.MetaObject()); region != "" {
		return region
	}
	if r.cache != nil && r.cache.Namespaces != nil {
		if region, ok := r.cache.Namespaces.GetDefaultRegion(res.MetaObject().GetNamespace()); ok {
			return ackv1alpha1.AWSRegion(region)
		}
	}
	return ackv1alpha1.AWSRegion(r.cfg.Region)
}

// getEndpointURL returns the AWS service endpoint override for the
// resource's Namespace, or the one from the controller configuration
func (r *resourceReconciler) getEndpointURL(
	res acktypes.AWSResource,
) string {
	if r.cache != nil && r.cache.Namespaces != nil {
		if endpointURL, ok := r.cache.Namespaces.GetEndpointURL(res.MetaObject().GetNamespace()); ok {
			return endpointURL
		}
	}
	return r.cfg.EndpointURL
}

// getDeletionPolicy returns the resource's deletion policy. The resource
// annotation wins over the Namespace annotation, which wins over the
// controller configuration. An empty result means delete.
func (r *resourceReconciler) getDeletionPolicy(
	res acktypes.AWSResource,
) ackv1alpha1.DeletionPolicy {
	mo := res.MetaObject()
	policy, err := annotation.GetDeletionPolicy(mo)
	if err != nil {
		r.log.Info("ignoring invalid deletion policy annotation", "namespace", mo.GetNamespace(), "name", mo.GetName(), "error", err.Error())
	}
	if err == nil && policy != "" {
		return policy
	}
	if r.cache != nil && r.cache.Namespaces != nil && r.sc != nil {
		service := r.sc.GetMetadata().ServiceAlias
		if v, ok := r.cache.Namespaces.GetDeletionPolicy(mo.GetNamespace(), service); ok {
			if policy, err := ackv1alpha1.ParseDeletionPolicy(v); err == nil {
				return policy
			}
		}
	}
	if r.cfg.DeletionPolicy != "" {
		return r.cfg.DeletionPolicy
	}
	return ackv1alpha1.DeletionPolicyDelete
}

// withStatusOf returns a copy of dst carrying the Status, conditions and
// resource metadata of src
func withStatusOf(dst, src acktypes.AWSResource) acktypes.AWSResource {
	res := dst.DeepCopy()
	res.SetStatus(src)
	res.ReplaceConditions(src.DeepCopy().Conditions())
	*res.Metadata() = *src.DeepCopy().Metadata()
	return res
}
