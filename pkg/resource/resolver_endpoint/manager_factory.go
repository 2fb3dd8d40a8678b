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

package resolver_endpoint

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
	ackwebhook "github.com/aws-controllers-k8s/route53resolver-controller/pkg/webhook"
)

// resourceManagerFactory produces resourceManager objects. It implements the
// `types.AWSResourceManagerFactory` interface.
type resourceManagerFactory struct {
	sync.RWMutex
	// rmCache contains resource managers for a particular AWS account ID and
	// region
	rmCache map[string]*resourceManager
}

// ResourceDescriptor returns a AWSResourceDescriptor that can be used by the
// upstream controller-runtime to introspect the CRs that the resource manager
// will manage as well as provide upstream with methods for converting between
// AWS API resource structures and CRs
func (f *resourceManagerFactory) ResourceDescriptor() acktypes.AWSResourceDescriptor {
	return &resourceDescriptor{}
}

// ManagerFor returns a resource manager object that can manage resources for a
// supplied AWS account
func (f *resourceManagerFactory) ManagerFor(
	cfg ackcfg.Config,
	clientcfg aws.Config,
	log logr.Logger,
	metrics *ackmetrics.Metrics,
	id ackv1alpha1.AWSAccountID,
	region ackv1alpha1.AWSRegion,
) (acktypes.AWSResourceManager, error) {
	rmId := fmt.Sprintf("%s/%s", id, region)
	f.RLock()
	rm, found := f.rmCache[rmId]
	f.RUnlock()

	if found {
		return rm, nil
	}

	f.Lock()
	defer f.Unlock()

	if rm, found = f.rmCache[rmId]; found {
		return rm, nil
	}
	rm, err := newResourceManager(cfg, clientcfg, log, metrics, id, region)
	if err != nil {
		return nil, err
	}
	f.rmCache[rmId] = rm
	return rm, nil
}

// RequeueOnSuccessSeconds returns zero so that the controller default resync
// period applies
func (f *resourceManagerFactory) RequeueOnSuccessSeconds() int {
	return 0
}

func newResourceManagerFactory() *resourceManagerFactory {
	return &resourceManagerFactory{
		rmCache: map[string]*resourceManager{},
	}
}

func init() {
	rmf := newResourceManagerFactory()
	svcresource.RegisterManagerFactory(rmf)
	if err := ackwebhook.RegisterWebhook(ackwebhook.NewValidating(rmf.ResourceDescriptor())); err != nil {
		panic(err)
	}
}
