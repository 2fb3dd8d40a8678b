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

package main

import (
	"context"
	"os"
	"strings"

	"github.com/samber/lo"
	flag "github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrlrt "sigs.k8s.io/controller-runtime"
	ctrlcache "sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	ctrlrtmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	ctrlwebhook "sigs.k8s.io/controller-runtime/pkg/webhook"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	svcresource "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource"
	ackrt "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
	ackwebhook "github.com/aws-controllers-k8s/route53resolver-controller/pkg/webhook"

	_ "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource/resolver_endpoint"
	_ "github.com/aws-controllers-k8s/route53resolver-controller/pkg/resource/resolver_rule"
)

var (
	awsServiceAPIGroup = "route53resolver.services.k8s.aws"
	awsServiceAlias    = "route53resolver"
	scheme             = runtime.NewScheme()
	setupLog           = ctrlrt.Log.WithName("setup")
)

// set by the linker
var (
	version   = "v0.0.0"
	buildHash = ""
	buildDate = ""
)

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = svcapitypes.AddToScheme(scheme)
}

func main() {
	var ackCfg ackcfg.Config
	ackCfg.BindFlags()
	flag.Parse()
	ackCfg.SetupLogger()

	if err := ackCfg.Validate(context.Background(), ackcfg.WithGVKs(resourceGVKs())); err != nil {
		setupLog.Error(
			err, "Unable to create controller manager",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}

	mgr, err := ctrlrt.NewManager(ctrlrt.GetConfigOrDie(), ctrlrt.Options{
		Scheme: scheme,
		Metrics: metricsserver.Options{
			BindAddress: ackCfg.MetricsAddr,
		},
		WebhookServer: ctrlwebhook.NewServer(ctrlwebhook.Options{
			Port: ackCfg.WebhookPort,
		}),
		HealthProbeBindAddress:  ackCfg.HealthProbeAddr,
		LeaderElection:          ackCfg.EnableLeaderElection,
		LeaderElectionID:        "ack-" + awsServiceAPIGroup,
		LeaderElectionNamespace: ackCfg.LeaderElectionNamespace,
		Cache: ctrlcache.Options{
			DefaultNamespaces: watchedNamespaces(ackCfg.WatchNamespace),
		},
	})
	if err != nil {
		setupLog.Error(
			err, "unable to create controller manager",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}

	stopChan := ctrlrt.SetupSignalHandler()

	setupLog.Info(
		"initializing service controller",
		"aws.service", awsServiceAlias,
	)
	sc := ackrt.NewServiceController(
		awsServiceAlias, awsServiceAPIGroup,
		acktypes.VersionInfo{
			GitCommit:  buildHash,
			GitVersion: version,
			BuildDate:  buildDate,
		},
	).WithLogger(
		ctrlrt.Log,
	).WithResourceManagerFactories(
		svcresource.GetManagerFactories(),
	).WithPrometheusRegistry(
		ctrlrtmetrics.Registry,
	)

	if err = sc.BindControllerManager(mgr, ackCfg); err != nil {
		setupLog.Error(
			err, "unable bind to controller manager to service controller",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}

	if ackCfg.EnableWebhooks {
		if err = ackwebhook.SetupAll(mgr); err != nil {
			setupLog.Error(
				err, "unable to set up webhooks",
				"aws.service", awsServiceAlias,
			)
			os.Exit(1)
		}
	}

	if err = mgr.AddHealthzCheck("health", healthz.Ping); err != nil {
		setupLog.Error(
			err, "unable to set up health check",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}
	if err = mgr.AddReadyzCheck("check", healthz.Ping); err != nil {
		setupLog.Error(
			err, "unable to set up ready check",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}

	setupLog.Info(
		"starting manager",
		"aws.service", awsServiceAlias,
	)
	if err := mgr.Start(stopChan); err != nil {
		setupLog.Error(
			err, "unable to start controller manager",
			"aws.service", awsServiceAlias,
		)
		os.Exit(1)
	}
}

func resourceGVKs() []schema.GroupVersionKind {
	return lo.Map(svcresource.GetManagerFactories(), func(f acktypes.AWSResourceManagerFactory, _ int) schema.GroupVersionKind {
		return f.ResourceDescriptor().GroupVersionKind()
	})
}

// watchedNamespaces returns the cache namespaces for a comma separated
// --watch-namespace value. An empty value watches the whole cluster.
func watchedNamespaces(watchNamespace string) map[string]ctrlcache.Config {
	names := lo.Compact(lo.Map(strings.Split(watchNamespace, ","), func(ns string, _ int) string {
		return strings.TrimSpace(ns)
	}))
	if len(names) == 0 {
		return nil
	}
	return lo.SliceToMap(names, func(ns string) (string, ctrlcache.Config) {
		return ns, ctrlcache.Config{}
	})
}
