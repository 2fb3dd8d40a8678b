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

// Package testutil holds test doubles shared by the controller's package
// tests: builders for valid custom resources and an in-memory stand-in for
// the Route 53 Resolver backend.
package testutil

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	_ "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource/resolver_endpoint"
	_ "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource/resolver_rule"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

const (
	EndpointKind = "ResolverEndpoint"
	RuleKind     = "ResolverRule"
)

// FactoryFor returns the registered resource manager factory of the
// supplied kind. It panics for an unknown kind.
func FactoryFor(kind string) acktypes.AWSResourceManagerFactory {
	for _, f := range svcresource.GetManagerFactories() {
		if f.ResourceDescriptor().GroupVersionKind().Kind == kind {
			return f
		}
	}
	panic(fmt.Sprintf("no resource manager factory registered for %s", kind))
}

// DescriptorFor returns the resource descriptor of the supplied kind
func DescriptorFor(kind string) acktypes.AWSResourceDescriptor {
	return FactoryFor(kind).ResourceDescriptor()
}

// NewEndpoint returns a valid inbound ResolverEndpoint
func NewEndpoint(namespace, name string) *svcapitypes.ResolverEndpoint {
	return &svcapitypes.ResolverEndpoint{
		TypeMeta: metav1.TypeMeta{
			APIVersion: svcapitypes.GroupVersion.String(),
			Kind:       EndpointKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Namespace:  namespace,
			Name:       name,
			Generation: 1,
		},
		Spec: svcapitypes.ResolverEndpointSpec{
			Direction: aws.String(string(svcapitypes.ResolverEndpointDirection_INBOUND)),
			Name:      aws.String(name),
			IPAddresses: []*svcapitypes.IPAddressRequest{
				{SubnetID: aws.String("subnet-a")},
				{SubnetID: aws.String("subnet-b")},
			},
			SecurityGroupIDs: aws.StringSlice([]string{"sg-1"}),
		},
	}
}

// NewRule returns a valid FORWARD ResolverRule sending queries through the
// supplied endpoint ID
func NewRule(namespace, name, endpointID string) *svcapitypes.ResolverRule {
	return &svcapitypes.ResolverRule{
		TypeMeta: metav1.TypeMeta{
			APIVersion: svcapitypes.GroupVersion.String(),
			Kind:       RuleKind,
		},
		ObjectMeta: metav1.ObjectMeta{
			Namespace:  namespace,
			Name:       name,
			Generation: 1,
		},
		Spec: svcapitypes.ResolverRuleSpec{
			DomainName:         aws.String(name + ".example.com"),
			Name:               aws.String(name),
			ResolverEndpointID: aws.String(endpointID),
			RuleType:           aws.String(string(svcapitypes.RuleTypeOption_FORWARD)),
			TargetIPs: []*svcapitypes.TargetAddress{
				{IP: aws.String("10.1.0.2")},
			},
		},
	}
}
