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
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	kubernetes "k8s.io/client-go/kubernetes"
	"k8s.io/utils/clock"
	ctrlrt "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	ackmetrics "github.com/aws-controllers-k8s/route53resolver-controller/pkg/metrics"
	ackrtcache "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/cache"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/store"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// Namespaces the namespace cache never tracks.
const (
	NamespaceKubeNodeLease = "kube-node-lease"
	NamespaceKubePublic    = "kube-public"
	NamespaceKubeSystem    = "kube-system"
)

// serviceController owns the reconcilers of every Route53 Resolver kind and
// the dispatcher that feeds them.
type serviceController struct {
	acktypes.ServiceControllerMetadata
	metaLock sync.RWMutex
	// keyed by GroupKind string
	rmFactories map[string]acktypes.AWSResourceManagerFactory
	reconcilers []acktypes.AWSResourceReconciler
	dispatcher  *Dispatcher
	log         logr.Logger
	metrics     *ackmetrics.Metrics
}

// GetReconcilers returns the reconcilers created by BindControllerManager
func (c *serviceController) GetReconcilers() []acktypes.AWSResourceReconciler {
	c.metaLock.RLock()
	defer c.metaLock.RUnlock()
	return c.reconcilers
}

// GetResourceManagerFactories returns the registered factories by GroupKind
func (c *serviceController) GetResourceManagerFactories() map[string]acktypes.AWSResourceManagerFactory {
	c.metaLock.RLock()
	defer c.metaLock.RUnlock()
	return c.rmFactories
}

// WithLogger sets the base logger handed to every reconciler
func (c *serviceController) WithLogger(log logr.Logger) acktypes.ServiceController {
	c.log = log
	return c
}

// WithPrometheusRegistry registers the controller metrics with reg
func (c *serviceController) WithPrometheusRegistry(
	reg prometheus.Registerer,
) acktypes.ServiceController {
	c.metrics.MustRegister(reg)
	return c
}

// WithResourceManagerFactories adds rmfs, replacing any factory already
// registered for the same GroupKind
func (c *serviceController) WithResourceManagerFactories(
	rmfs []acktypes.AWSResourceManagerFactory,
) acktypes.ServiceController {
	c.metaLock.Lock()
	defer c.metaLock.Unlock()

	if c.rmFactories == nil {
		c.rmFactories = map[string]acktypes.AWSResourceManagerFactory{}
	}
	for _, rmf := range rmfs {
		gk := rmf.ResourceDescriptor().GroupVersionKind().GroupKind()
		c.rmFactories[gk.String()] = rmf
	}
	return c
}

// watchNamespaces returns the namespaces listed by --watch-namespace
func watchNamespaces(cfg ackcfg.Config) []string {
	if cfg.WatchNamespace == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(cfg.WatchNamespace, ","), func(ns string, _ int) string {
		return strings.TrimSpace(ns)
	}))
}

// BindControllerManager creates one reconciler per registered kind and
// adds the namespace cache and the Dispatcher to mgr as runnables. The
// manager's informers feed the Dispatcher.
func (c *serviceController) BindControllerManager(mgr ctrlrt.Manager, cfg ackcfg.Config) error {
	c.metaLock.Lock()
	defer c.metaLock.Unlock()

	caches := ackrtcache.New(c.log, ackrtcache.Config{
		WatchScope: watchNamespaces(cfg),
		Ignored: []string{
			NamespaceKubeSystem,
			NamespaceKubePublic,
			NamespaceKubeNodeLease,
		},
	})
	clientSet, err := kubernetes.NewForConfig(mgr.GetConfig())
	if err != nil {
		return fmt.Errorf("building kubernetes client: %w", err)
	}
	// The namespace caches live as long as the manager
	if err := mgr.Add(manager.RunnableFunc(func(ctx context.Context) error {
		caches.Run(clientSet)
		<-ctx.Done()
		caches.Stop()
		return nil
	})); err != nil {
		return err
	}

	keys := lo.Keys(c.rmFactories)
	sort.Strings(keys)
	rds := lo.Map(keys, func(key string, _ int) acktypes.AWSResourceDescriptor {
		return c.rmFactories[key].ResourceDescriptor()
	})

	st := store.NewKube(mgr.GetClient(), mgr.GetAPIReader(), rds...)
	c.dispatcher = NewDispatcher(c.log, clock.RealClock{}, cfg.MaxConcurrentSyncs)

	for _, key := range keys {
		rmf := c.rmFactories[key]
		rd := rmf.ResourceDescriptor()
		gvk := rd.GroupVersionKind()
		others := lo.Filter(rds, func(other acktypes.AWSResourceDescriptor, _ int) bool {
			return other.GroupVersionKind() != gvk
		})
		rec := NewReconciler(c, rmf, st, c.log, cfg, c.metrics, caches, others...)
		c.dispatcher.Register(gvk, rec)

		informer, err := mgr.GetCache().GetInformer(context.TODO(), rd.EmptyRuntimeObject())
		if err != nil {
			return fmt.Errorf("getting informer for %s: %w", gvk.Kind, err)
		}
		if _, err := informer.AddEventHandler(c.dispatcher.EventHandler(gvk)); err != nil {
			return fmt.Errorf("watching %s: %w", gvk.Kind, err)
		}
		c.log.Info("watching resource kind", "kind", gvk.Kind)
		c.reconcilers = append(c.reconcilers, rec)
	}

	return mgr.Add(c.dispatcher)
}

// GetMetadata returns the metadata associated with the service controller.
func (c *serviceController) GetMetadata() acktypes.ServiceControllerMetadata {
	return c.ServiceControllerMetadata
}

// NewServiceController returns a new serviceController instance
func NewServiceController(
	svcAlias string,
	svcAPIGroup string,
	versionInfo acktypes.VersionInfo,
) acktypes.ServiceController {
	return &serviceController{
		ServiceControllerMetadata: acktypes.ServiceControllerMetadata{
			VersionInfo:     versionInfo,
			ServiceAlias:    svcAlias,
			ServiceAPIGroup: svcAPIGroup,
		},
		metrics: ackmetrics.NewMetrics(svcAlias),
		log:     logr.Discard(),
	}
}
