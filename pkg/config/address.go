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

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// metricsDisabled is the controller-runtime bind address turning the
// metrics endpoint off
const metricsDisabled = "0"

// splitBindAddress extracts the host and port of a listen address. The host
// may be empty; the port may not.
func splitBindAddress(address string) (string, int, error) {
	u, err := url.Parse(fmt.Sprintf("//%s", address))
	if err != nil {
		return "", 0, err
	}

	host, portString, err := net.SplitHostPort(u.Host)
	if err != nil {
		return "", 0, err
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return "", 0, fmt.Errorf("cannot parse port: %v", err)
	}
	if port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("port %d out of range", port)
	}
	return host, port, nil
}

func validateBindAddress(flagName, address string) error {
	if address == "" || (flagName == flagMetricAddr && address == metricsDisabled) {
		return nil
	}
	if _, _, err := splitBindAddress(address); err != nil {
		return fmt.Errorf("invalid value for flag '%s': %w", flagName, err)
	}
	return nil
}
