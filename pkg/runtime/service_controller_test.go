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

package runtime_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/cache/informertest"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	ctrlrtzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
	ctrlmanager "sigs.k8s.io/controller-runtime/pkg/manager"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	ackrt "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/testutil"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

var (
	scheme = runtime.NewScheme()
)

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = svcapitypes.AddToScheme(scheme)
}

// fakeManager stands in for a controller-runtime Manager. Only the methods
// used while binding the service controller are implemented.
type fakeManager struct {
	ctrlmanager.Manager
	informers *informertest.FakeInformers
	kc        client.Client
	runnables []ctrlmanager.Runnable
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		informers: &informertest.FakeInformers{Scheme: scheme},
		kc:        fake.NewClientBuilder().WithScheme(scheme).Build(),
	}
}

func (m *fakeManager) Add(r ctrlmanager.Runnable) error {
	m.runnables = append(m.runnables, r)
	return nil
}
func (m *fakeManager) GetConfig() *rest.Config      { return &rest.Config{Host: "https://127.0.0.1:6443"} }
func (m *fakeManager) GetScheme() *runtime.Scheme   { return scheme }
func (m *fakeManager) GetClient() client.Client     { return m.kc }
func (m *fakeManager) GetAPIReader() client.Reader  { return m.kc }
func (m *fakeManager) GetCache() cache.Cache        { return m.informers }

func TestServiceController(t *testing.T) {
	require := require.New(t)

	vi := acktypes.VersionInfo{
		GitCommit:  "test-commit",
		GitVersion: "test-version",
		BuildDate:  "now",
	}

	sc := ackrt.NewServiceController("route53resolver", "route53resolver.services.k8s.aws", vi)
	require.NotNil(sc)
	zapOptions := ctrlrtzap.Options{
		Development: true,
		Level:       zapcore.InfoLevel,
	}
	fakeLogger := ctrlrtzap.New(ctrlrtzap.UseFlagOptions(&zapOptions))
	sc.WithLogger(fakeLogger)
	sc.WithResourceManagerFactories(svcresource.GetManagerFactories())
	sc.WithPrometheusRegistry(prometheus.NewRegistry())

	require.Len(sc.GetResourceManagerFactories(), 2)

	// Before we bind to a controller manager, there are no reconcilers in the
	// service controller
	require.Empty(sc.GetReconcilers())

	mgr := newFakeManager()
	cfg := ackcfg.Config{MaxConcurrentSyncs: 2}
	require.NoError(sc.BindControllerManager(mgr, cfg))

	kinds := []string{}
	for _, recon := range sc.GetReconcilers() {
		kinds = append(kinds, recon.GroupVersionKind().Kind)
	}
	require.ElementsMatch([]string{testutil.EndpointKind, testutil.RuleKind}, kinds)

	for _, kind := range kinds {
		_, ok := mgr.informers.InformersByGVK[svcapitypes.GroupVersion.WithKind(kind)]
		require.True(ok, "no informer for %s", kind)
	}

	var dispatcher *ackrt.Dispatcher
	for _, r := range mgr.runnables {
		if d, ok := r.(*ackrt.Dispatcher); ok {
			dispatcher = d
		}
	}
	require.NotNil(dispatcher)
	require.True(dispatcher.NeedLeaderElection())
}
