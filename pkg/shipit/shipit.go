// Package shipit provides a client for the Shipit logistics REST API.
//
// Shipment and order requests are built as field-restricted records
// (ShippingRequest, OrderRequest), translated into the nested payload the
// vendor expects, and sent through a Client that injects the account
// credentials and classifies transport failures into typed errors.
package shipit

import "strings"

// Environment selects how outgoing payloads are prepared.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ParseEnvironment maps s to an Environment. Anything other than
// "development" is treated as production.
func ParseEnvironment(s string) Environment {
	if Environment(strings.TrimSpace(s)) == EnvDevelopment {
		return EnvDevelopment
	}
	return EnvProduction
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e.normalize())
}

func (e Environment) normalize() Environment {
	if e == EnvDevelopment {
		return EnvDevelopment
	}
	return EnvProduction
}

// Vendor endpoints.
const (
	DefaultBaseURL       = "https://api.shipit.cl/v/"
	DefaultOrdersBaseURL = "https://orders.shipit.cl/v/"
)

// Accept headers select the vendor API version.
const (
	AcceptV2       = "application/vnd.shipit.v2"
	AcceptV4       = "application/vnd.shipit.v4"
	AcceptOrdersV1 = "application/vnd.orders.v1"
)

// Headers sent on every vendor call.
const (
	HeaderEmail       = "X-Shipit-Email"
	HeaderAccessToken = "X-Shipit-Access-Token"
)
