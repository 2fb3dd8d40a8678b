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

package v1alpha1

const (
	// AnnotationPrefix is the prefix for all annotations and tag keys owned
	// by the controller
	AnnotationPrefix = "services.k8s.aws/"
	// AnnotationAdopted is an annotation whose value is a boolean indicating
	// whether or not the resource has been bound to a pre-existing backend
	// resource rather than created by the controller.
	AnnotationAdopted = AnnotationPrefix + "adopted"
	// AnnotationAdoptionPolicy is an annotation whose value is the identifier
	// for the adoption policy. Supported values are "adopt" and
	// "adopt-or-create".
	AnnotationAdoptionPolicy = AnnotationPrefix + "adoption-policy"
	// AnnotationAdoptionFields is an annotation whose value is a JSON object
	// holding the identifiers of the backend resource to adopt, e.g.
	// `{"id": "rslvr-out-1abc"}`
	AnnotationAdoptionFields = AnnotationPrefix + "adoption-fields"
	// AnnotationDeletionPolicy is an annotation whose value is the identifier
	// for the the deletion policy for the current resource. If this value is
	// set to "delete" the backend resource is deleted along with the CR,
	// "retain" leaves it intact.
	AnnotationDeletionPolicy = AnnotationPrefix + "deletion-policy"
	// AnnotationReadOnly is an annotation whose value is a boolean indicating
	// that the controller must only observe the backend resource and never
	// mutate it.
	AnnotationReadOnly = AnnotationPrefix + "read-only"
	// AnnotationRegion is an annotation whose value is the identifier for the
	// the AWS region in which the resources should be created.
	AnnotationRegion = AnnotationPrefix + "region"
	// AnnotationDefaultRegion is an annotation whose value is the identifier
	// for the default AWS region in which resources should be created. If set,
	// this annotation will only apply to resources in the annotated Namespace.
	AnnotationDefaultRegion = AnnotationPrefix + "default-region"
	// AnnotationEndpointURL is an annotation whose value is the AWS endpoint
	// URL used for resources in the annotated Namespace.
	AnnotationEndpointURL = AnnotationPrefix + "endpoint-url"
)
