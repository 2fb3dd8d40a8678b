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
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Factory hands out the same Manager for every account and region while
// using the real descriptor of its kind
type Factory struct {
	Descriptor     acktypes.AWSResourceDescriptor
	Manager        *Manager
	RequeueSeconds int
}

// NewFactory returns a Factory for the supplied kind backed by a fresh
// Manager
func NewFactory(kind string, idPrefix string) *Factory {
	return &Factory{
		Descriptor: DescriptorFor(kind),
		Manager:    NewManager(idPrefix),
	}
}

func (f *Factory) ResourceDescriptor() acktypes.AWSResourceDescriptor {
	return f.Descriptor
}

func (f *Factory) ManagerFor(
	ackcfg.Config,
	aws.Config,
	logr.Logger,
	*ackmetrics.Metrics,
	ackv1alpha1.AWSAccountID,
	ackv1alpha1.AWSRegion,
) (acktypes.AWSResourceManager, error) {
	return f.Manager, nil
}

func (f *Factory) RequeueOnSuccessSeconds() int {
	return f.RequeueSeconds
}
