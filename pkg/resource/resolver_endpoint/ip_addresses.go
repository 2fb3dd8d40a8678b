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
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	svcsdk "github.com/aws/aws-sdk-go-v2/service/route53resolver"
	svcsdktypes "github.com/aws/aws-sdk-go-v2/service/route53resolver/types"
	"github.com/samber/lo"

	svcapitypes "github.com/aws-controllers-k8s/route53resolver-controller/apis/v1alpha1"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
)

// listAttachedIPAddresses fills Spec.IPAddresses and Status.IPAddresses with
// the addresses currently attached to the endpoint. Both lists share the
// same order.
func (rm *resourceManager) listAttachedIPAddresses(
	ctx context.Context,
	ko *svcapitypes.ResolverEndpoint,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.listAttachedIPAddresses")
	defer func() {
		exit(err)
	}()

	requested := []*svcapitypes.IPAddressRequest{}
	attached := []*svcapitypes.IPAddressResponse{}
	paginator := svcsdk.NewListResolverEndpointIpAddressesPaginator(
		rm.sdkapi,
		&svcsdk.ListResolverEndpointIpAddressesInput{
			ResolverEndpointId: ko.Status.ID,
		},
	)
	for paginator.HasMorePages() {
		var page *svcsdk.ListResolverEndpointIpAddressesOutput
		page, err = paginator.NextPage(ctx)
		rm.metrics.RecordAPICall("READ_MANY", "ListResolverEndpointIpAddresses", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
		for _, elem := range page.IpAddresses {
			requested = append(requested, &svcapitypes.IPAddressRequest{
				IP:       elem.Ip,
				IPv6:     elem.Ipv6,
				SubnetID: elem.SubnetId,
			})
			resp := &svcapitypes.IPAddressResponse{
				CreationTime:     elem.CreationTime,
				IP:               elem.Ip,
				IPID:             elem.IpId,
				IPv6:             elem.Ipv6,
				ModificationTime: elem.ModificationTime,
				StatusMessage:    elem.StatusMessage,
				SubnetID:         elem.SubnetId,
			}
			if elem.Status != "" {
				resp.Status = aws.String(string(elem.Status))
			}
			attached = append(attached, resp)
		}
	}
	ko.Spec.IPAddresses = requested
	ko.Status.IPAddresses = attached
	return nil
}

// syncIPAddresses associates the desired addresses missing on the endpoint,
// then disassociates the attached addresses no longer desired. Adding first
// keeps the endpoint above its two address minimum. The IP address count of
// the updated object is refreshed from each response.
func (rm *resourceManager) syncIPAddresses(
	ctx context.Context,
	desired *resource,
	latest *resource,
	updated *svcapitypes.ResolverEndpoint,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.syncIPAddresses")
	defer func() {
		exit(err)
	}()

	added, removed := ipAddressDifference(desired, latest)

	for _, ipa := range added {
		var resp *svcsdk.AssociateResolverEndpointIpAddressOutput
		resp, err = rm.sdkapi.AssociateResolverEndpointIpAddress(
			ctx,
			&svcsdk.AssociateResolverEndpointIpAddressInput{
				IpAddress: &svcsdktypes.IpAddressUpdate{
					Ip:       ipa.IP,
					Ipv6:     ipa.IPv6,
					SubnetId: ipa.SubnetID,
				},
				ResolverEndpointId: latest.ko.Status.ID,
			},
		)
		rm.metrics.RecordAPICall("UPDATE", "AssociateResolverEndpointIpAddress", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
		setIPAddressCount(updated, resp.ResolverEndpoint)
	}

	for _, ipID := range removed {
		var resp *svcsdk.DisassociateResolverEndpointIpAddressOutput
		resp, err = rm.sdkapi.DisassociateResolverEndpointIpAddress(
			ctx,
			&svcsdk.DisassociateResolverEndpointIpAddressInput{
				IpAddress: &svcsdktypes.IpAddressUpdate{
					IpId: aws.String(ipID),
				},
				ResolverEndpointId: latest.ko.Status.ID,
			},
		)
		rm.metrics.RecordAPICall("UPDATE", "DisassociateResolverEndpointIpAddress", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
		setIPAddressCount(updated, resp.ResolverEndpoint)
	}
	return nil
}

// ipAddressMatches returns true when have satisfies want: same subnet and,
// when want names an address, that same address.
func ipAddressMatches(want, have *svcapitypes.IPAddressRequest) bool {
	if aws.ToString(want.SubnetID) != aws.ToString(have.SubnetID) {
		return false
	}
	if want.IP != nil && aws.ToString(want.IP) != aws.ToString(have.IP) {
		return false
	}
	if want.IPv6 != nil && aws.ToString(want.IPv6) != aws.ToString(have.IPv6) {
		return false
	}
	return true
}

// pairIPAddresses matches every desired address with at most one observed
// address and returns the indexes left unmatched on both sides. Entries
// naming an explicit address are paired first so a subnet-only entry
// cannot take the address they need.
func pairIPAddresses(
	desired, observed []*svcapitypes.IPAddressRequest,
) (unmatchedDesired, unmatchedObserved []int) {
	taken := make([]bool, len(observed))
	explicit, anyAddress := lo.FilterReject(
		lo.Range(len(desired)),
		func(i int, _ int) bool {
			return desired[i] != nil && (desired[i].IP != nil || desired[i].IPv6 != nil)
		},
	)
	for _, i := range append(explicit, anyAddress...) {
		want := desired[i]
		if want == nil {
			continue
		}
		matched := false
		for j, have := range observed {
			if !taken[j] && have != nil && ipAddressMatches(want, have) {
				taken[j], matched = true, true
				break
			}
		}
		if !matched {
			unmatchedDesired = append(unmatchedDesired, i)
		}
	}
	for j, have := range observed {
		if have != nil && !taken[j] {
			unmatchedObserved = append(unmatchedObserved, j)
		}
	}
	sort.Ints(unmatchedDesired)
	return unmatchedDesired, unmatchedObserved
}

// ipAddressesEqual returns true when every desired address is attached and
// nothing else is
func ipAddressesEqual(desired, observed []*svcapitypes.IPAddressRequest) bool {
	missing, extra := pairIPAddresses(desired, observed)
	return len(missing) == 0 && len(extra) == 0
}

// ipAddressDifference returns the desired addresses the endpoint lacks and
// the IP IDs of attached addresses nothing desired accounts for. Changing
// the address within an attached subnet yields one of each.
func ipAddressDifference(
	desired, latest *resource,
) (added []*svcapitypes.IPAddressRequest, removed []string) {
	attached := lo.Filter(latest.ko.Status.IPAddresses, func(ipa *svcapitypes.IPAddressResponse, _ int) bool {
		return ipa != nil && ipa.IPID != nil
	})
	observed := lo.Map(attached, func(ipa *svcapitypes.IPAddressResponse, _ int) *svcapitypes.IPAddressRequest {
		return &svcapitypes.IPAddressRequest{IP: ipa.IP, IPv6: ipa.IPv6, SubnetID: ipa.SubnetID}
	})
	missing, extra := pairIPAddresses(desired.ko.Spec.IPAddresses, observed)
	for _, i := range missing {
		added = append(added, desired.ko.Spec.IPAddresses[i])
	}
	for _, j := range extra {
		removed = append(removed, *attached[j].IPID)
	}
	return added, removed
}

func setIPAddressCount(
	ko *svcapitypes.ResolverEndpoint,
	ep *svcsdktypes.ResolverEndpoint,
) {
	if ep == nil || ep.IpAddressCount == nil {
		return
	}
	count := int64(*ep.IpAddressCount)
	ko.Status.IPAddressCount = &count
}
