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

	"github.com/pkg/errors"
	"github.com/samber/lo"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	ackcondition "github.com/aws-controllers-k8s/route53resolver-controller/pkg/condition"
	ackerr "github.com/aws-controllers-k8s/route53resolver-controller/pkg/errors"
	ackrtlog "github.com/aws-controllers-k8s/route53resolver-controller/pkg/runtime/log"
	acktypes "github.com/aws-controllers-k8s/route53resolver-controller/pkg/types"
)

// adoptResource binds the custom resource to the pre-existing backend
// resource with the supplied ID instead of creating one. A missing backend
// resource is created when orCreate is set.
func (r *resourceReconciler) adoptResource(
	ctx context.Context,
	st *syncState,
	desired acktypes.AWSResource,
	id string,
	orCreate bool,
) (latest, observed acktypes.AWSResource, err error) {
	rlog := ackrtlog.FromContext(ctx)
	exit := rlog.Trace("r.adoptResource", "id", id)
	defer func() {
		exit(err)
	}()

	latest = desired
	latest.Metadata().State = ackv1alpha1.StateAdopting

	owner, err := r.ownerOf(ctx, latest, id)
	if err != nil {
		return latest, nil, err
	}
	if owner != "" {
		return latest, nil, ackerr.NewAdoptionMismatch(
			errors.Wrapf(ackerr.AdoptedResourceAlreadyOwned, "%s is bound to %s", id, owner),
		)
	}

	probe := latest.DeepCopy()
	if err = probe.SetIdentifiers(&ackv1alpha1.AWSIdentifiers{NameOrID: id}); err != nil {
		return latest, nil, ackerr.NewPermanent(err)
	}
	rlog.Enter("rm.ReadOne")
	observed, err = st.rm.ReadOne(ctx, probe)
	rlog.Exit("rm.ReadOne", err)
	if err != nil {
		if !ackerr.IsNotFound(err) {
			return latest, nil, err
		}
		if orCreate {
			rlog.Info("resource to adopt does not exist, creating it", "id", id)
			return r.createResource(ctx, st, latest)
		}
		return latest, nil, ackerr.NewAdoptionMismatch(
			errors.Wrapf(ackerr.AdoptedResourceNotFound, "%s", id),
		)
	}

	r.rd.MarkManaged(latest)
	r.rd.MarkAdopted(latest)
	if latest, err = st.patchMetadata(ctx, latest); err != nil {
		return latest, nil, err
	}
	latest.SetStatus(observed)
	latest.Metadata().State = ackv1alpha1.StateSyncing
	ackcondition.SetAdopted(latest)
	if err = st.patchStatus(ctx, latest); err != nil {
		return latest, nil, err
	}
	rlog.Info("adopted existing resource", "id", id)
	return latest, observed, nil
}

// ownerOf returns the name of another custom resource of the same kind that
// is already bound to the backend resource with the supplied ID, or the
// empty string
func (r *resourceReconciler) ownerOf(
	ctx context.Context,
	res acktypes.AWSResource,
	id string,
) (string, error) {
	items, err := r.store.List(ctx, r.rd.GroupVersionKind())
	if err != nil {
		return "", errors.Wrap(err, "listing resources")
	}
	self := res.MetaObject()
	owner, found := lo.Find(items, func(item acktypes.AWSResource) bool {
		mo := item.MetaObject()
		if mo.GetNamespace() == self.GetNamespace() && mo.GetName() == self.GetName() {
			return false
		}
		return item.Identifiers().ID() == id
	})
	if !found {
		return "", nil
	}
	return owner.MetaObject().GetNamespace() + "/" + owner.MetaObject().GetName(), nil
}
