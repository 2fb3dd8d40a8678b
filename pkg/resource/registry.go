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

package resource

import (
	"sync"

	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

var (
	regMu     sync.RWMutex
	factories []acktypes.AWSResourceManagerFactory
)

// RegisterManagerFactory makes a resource manager factory available to the
// service controller. Each resource package calls it from its init().
func RegisterManagerFactory(f acktypes.AWSResourceManagerFactory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories = append(factories, f)
}

// GetManagerFactories returns the registered resource manager factories in
// registration order
func GetManagerFactories() []acktypes.AWSResourceManagerFactory {
	regMu.RLock()
	defer regMu.RUnlock()
	res := make([]acktypes.AWSResourceManagerFactory, len(factories))
	copy(res, factories)
	return res
}
