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
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	k8stypes "k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clocktesting "k8s.io/utils/clock/testing"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackcondition "github.com/aws-controllers-k8s/route53resolver-controller/pkg/condition"
	ackcfg "github.com/aws-controllers-k8s/route53resolver-controller/pkg/config"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/featuregate"
	ackrt "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/store"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/testutil"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

const (
	timeout  = 5 * time.Second
	interval = 10 * time.Millisecond

	loopNamespace = "dns"
)

var _ = Describe("Controller loop", func() {
	var (
		ctx        context.Context
		cancel     context.CancelFunc
		clk        *clocktesting.FakeClock
		st         *store.Memory
		epF        *testutil.Factory
		ruleF      *testutil.Factory
		dispatcher *ackrt.Dispatcher
		stopped    chan error
	)

	key := func(name string) k8stypes.NamespacedName {
		return k8stypes.NamespacedName{Namespace: loopNamespace, Name: name}
	}

	get := func(rd acktypes.AWSResourceDescriptor, name string) acktypes.AWSResource {
		res, err := st.Get(ctx, rd.GroupVersionKind(), key(name))
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	stateOf := func(rd acktypes.AWSResourceDescriptor, name string) func() ackv1alpha1.ReconcileState {
		return func() ackv1alpha1.ReconcileState {
			res, err := st.Get(ctx, rd.GroupVersionKind(), key(name))
			if err != nil {
				return ""
			}
			return res.Metadata().State
		}
	}

	existsFn := func(rd acktypes.AWSResourceDescriptor, name string) func() bool {
		return func() bool {
			return st.Exists(rd.GroupVersionKind(), key(name))
		}
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		clk = clocktesting.NewFakeClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
		epF = testutil.NewFactory(testutil.EndpointKind, "rslvr-in")
		ruleF = testutil.NewFactory(testutil.RuleKind, "rslvr-rr")
		st = store.NewMemory(clk, epF.Descriptor, ruleF.Descriptor)

		cfg := ackcfg.Config{
			AccountID:      "123456789012",
			Region:         "us-west-2",
			ResourceTags:   ackcfg.DefaultResourceTags,
			MaxRetries:     3,
			BackoffInitial: time.Second,
			BackoffFactor:  2,
			BackoffMax:     time.Minute,
			FeatureGates:   featuregate.GetDefaultFeatureGates(),
		}
		sc := ackrt.NewServiceController(
			"route53resolver", "route53resolver.services.k8s.aws",
			acktypes.VersionInfo{GitVersion: "v1.0.0", GitCommit: "abc123"},
		)

		dispatcher = ackrt.NewDispatcher(logr.Discard(), clk, 2)
		for _, pair := range []struct {
			f   *testutil.Factory
			dep acktypes.AWSResourceDescriptor
		}{
			{epF, ruleF.Descriptor},
			{ruleF, epF.Descriptor},
		} {
			r := ackrt.NewReconciler(sc, pair.f, st, logr.Discard(), cfg, nil, nil, pair.dep)
			dispatcher.Register(r.GroupVersionKind(), r)
		}
		st.Subscribe(func(gvk schema.GroupVersionKind, nn k8stypes.NamespacedName) {
			dispatcher.Enqueue(ackrt.Request{GVK: gvk, NamespacedName: nn})
		})

		stopped = make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			stopped <- dispatcher.Start(ctx)
		}()
	})

	AfterEach(func() {
		cancel()
		Eventually(stopped, timeout, interval).Should(Receive(BeNil()))
	})

	Describe("CREATE", func() {
		It("creates the resolver endpoint and marks it synced", func() {
			ko := testutil.NewEndpoint(loopNamespace, "inbound")
			Expect(st.Create(ctx, epF.Descriptor.ResourceFromRuntimeObject(ko))).To(Succeed())

			Eventually(stateOf(epF.Descriptor, "inbound"), timeout, interval).
				Should(Equal(ackv1alpha1.StateSynced))

			latest := get(epF.Descriptor, "inbound")
			Expect(latest.Identifiers().ID()).To(Equal("rslvr-in-1"))
			Expect(epF.Descriptor.IsManaged(latest)).To(BeTrue())
			Expect(ackcondition.IsSynced(latest)).To(BeTrue())
			Expect(epF.Manager.CallCount(testutil.OpCreate)).To(Equal(1))
			Expect(epF.Manager.Len()).To(Equal(1))

			// the success requeue waits for the resync period
			Eventually(dispatcher.Pending, timeout, interval).Should(Equal(1))
		})
	})

	Describe("UPDATE", func() {
		It("pushes a spec change to the backend", func() {
			ko := testutil.NewEndpoint(loopNamespace, "inbound")
			Expect(st.Create(ctx, epF.Descriptor.ResourceFromRuntimeObject(ko))).To(Succeed())
			Eventually(stateOf(epF.Descriptor, "inbound"), timeout, interval).
				Should(Equal(ackv1alpha1.StateSynced))

			res := get(epF.Descriptor, "inbound")
			res.RuntimeObject().(*svcapitypes.ResolverEndpoint).Spec.Name = aws.String("renamed")
			Expect(st.Update(ctx, res)).To(Succeed())

			Eventually(func() int {
				return epF.Manager.CallCount(testutil.OpUpdate)
			}, timeout, interval).Should(Equal(1))
			Eventually(func() int64 {
				return get(epF.Descriptor, "inbound").Metadata().ObservedGeneration
			}, timeout, interval).Should(BeEquivalentTo(2))

			backend, ok := epF.Manager.Get("rslvr-in-1")
			Expect(ok).To(BeTrue())
			Expect(aws.ToString(backend.RuntimeObject().(*svcapitypes.ResolverEndpoint).Spec.Name)).
				To(Equal("renamed"))
			Expect(epF.Manager.CallCount(testutil.OpCreate)).To(Equal(1))
		})
	})

	Describe("DELETE", func() {
		It("holds the endpoint back until no rule references it", func() {
			ep := testutil.NewEndpoint(loopNamespace, "outbound")
			Expect(st.Create(ctx, epF.Descriptor.ResourceFromRuntimeObject(ep))).To(Succeed())
			Eventually(stateOf(epF.Descriptor, "outbound"), timeout, interval).
				Should(Equal(ackv1alpha1.StateSynced))

			rule := testutil.NewRule(loopNamespace, "forward", "rslvr-in-1")
			Expect(st.Create(ctx, ruleF.Descriptor.ResourceFromRuntimeObject(rule))).To(Succeed())
			Eventually(stateOf(ruleF.Descriptor, "forward"), timeout, interval).
				Should(Equal(ackv1alpha1.StateSynced))

			Expect(st.Delete(ctx, epF.Descriptor.GroupVersionKind(), key("outbound"))).To(Succeed())
			Eventually(stateOf(epF.Descriptor, "outbound"), timeout, interval).
				Should(Equal(ackv1alpha1.StateDeleting))
			reason := aws.ToString(ackcondition.Synced(get(epF.Descriptor, "outbound")).Reason)
			Expect(reason).To(ContainSubstring("ResolverRule dns/forward"))
			Expect(epF.Manager.CallCount(testutil.OpDelete)).To(BeZero())

			// the endpoint waits on its requeue, the rule on its resync
			Eventually(dispatcher.Pending, timeout, interval).Should(Equal(2))

			Expect(st.Delete(ctx, ruleF.Descriptor.GroupVersionKind(), key("forward"))).To(Succeed())
			Eventually(existsFn(ruleF.Descriptor, "forward"), timeout, interval).Should(BeFalse())
			Expect(ruleF.Manager.Len()).To(BeZero())
			Eventually(dispatcher.Pending, timeout, interval).Should(Equal(1))

			clk.Step(time.Minute)
			Eventually(existsFn(epF.Descriptor, "outbound"), timeout, interval).Should(BeFalse())
			Expect(epF.Manager.CallCount(testutil.OpDelete)).To(Equal(1))
			Expect(epF.Manager.Len()).To(BeZero())
		})
	})
})
