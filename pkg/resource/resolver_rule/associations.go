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

package resolver_rule

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

// filterResolverRuleID is the ListResolverRuleAssociations filter selecting
// the associations of one rule
const filterResolverRuleID = "ResolverRuleId"

// getAttachedVPCs returns the VPCs the rule is associated with. Associations
// being torn down are left out.
func (rm *resourceManager) getAttachedVPCs(
	ctx context.Context,
	ruleID string,
) (assocs []*svcapitypes.ResolverRuleAssociation, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.getAttachedVPCs")
	defer func() {
		exit(err)
	}()

	paginator := svcsdk.NewListResolverRuleAssociationsPaginator(
		rm.sdkapi,
		&svcsdk.ListResolverRuleAssociationsInput{
			Filters: []svcsdktypes.Filter{{
				Name:   aws.String(filterResolverRuleID),
				Values: []string{ruleID},
			}},
		},
	)
	for paginator.HasMorePages() {
		var page *svcsdk.ListResolverRuleAssociationsOutput
		page, err = paginator.NextPage(ctx)
		rm.metrics.RecordAPICall("READ_MANY", "ListResolverRuleAssociations", err)
		if err != nil {
			err = ackerr.Classify(err)
			return nil, err
		}
		for _, a := range page.ResolverRuleAssociations {
			if a.Status == svcsdktypes.ResolverRuleAssociationStatusDeleting || a.VPCId == nil {
				continue
			}
			assocs = append(assocs, &svcapitypes.ResolverRuleAssociation{VPCID: a.VPCId})
		}
	}
	return assocs, nil
}

// syncAssociations associates the rule with the desired VPCs it is not yet
// associated with, then disassociates the VPCs that are no longer desired
func (rm *resourceManager) syncAssociations(
	ctx context.Context,
	ruleID string,
	desired []*svcapitypes.ResolverRuleAssociation,
	latest []*svcapitypes.ResolverRuleAssociation,
) (err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("rm.syncAssociations")
	defer func() {
		exit(err)
	}()

	desiredVPCs := vpcSet(desired)
	latestVPCs := vpcSet(latest)
	toAdd := lo.Keys(lo.OmitByKeys(desiredVPCs, lo.Keys(latestVPCs)))
	toDelete := lo.Keys(lo.OmitByKeys(latestVPCs, lo.Keys(desiredVPCs)))
	sort.Strings(toAdd)
	sort.Strings(toDelete)

	for _, vpcID := range toAdd {
		_, err = rm.sdkapi.AssociateResolverRule(ctx, &svcsdk.AssociateResolverRuleInput{
			ResolverRuleId: aws.String(ruleID),
			VPCId:          aws.String(vpcID),
		})
		rm.metrics.RecordAPICall("UPDATE", "AssociateResolverRule", err)
		if err != nil {
			err = ackerr.Classify(err)
			return err
		}
	}
	for _, vpcID := range toDelete {
		_, err = rm.sdkapi.DisassociateResolverRule(ctx, &svcsdk.DisassociateResolverRuleInput{
			ResolverRuleId: aws.String(ruleID),
			VPCId:          aws.String(vpcID),
		})
		rm.metrics.RecordAPICall("UPDATE", "DisassociateResolverRule", err)
		if err != nil {
			err = ackerr.Classify(err)
			if ackerr.IsNotFound(err) {
				err = nil
				continue
			}
			return err
		}
	}
	return nil
}

func vpcSet(assocs []*svcapitypes.ResolverRuleAssociation) map[string]struct{} {
	res := map[string]struct{}{}
	for _, a := range assocs {
		if a != nil && a.VPCID != nil {
			res[*a.VPCID] = struct{}{}
		}
	}
	return res
}
