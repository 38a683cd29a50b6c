package order

import (
	"fmt"

	"pressing/internal/pkg/errs"
)

// ServiceType selects the pressing service tier, which determines the
// per-kilogram rate used by the pricing service.
type ServiceType int

const (
	// ServiceUnknown represents an invalid or undefined service type.
	ServiceUnknown ServiceType = iota

	// ServiceStandard is the base tier.
	ServiceStandard

	// ServiceExpress is the accelerated tier.
	ServiceExpress

	// ServiceUltra is the premium same-day tier.
	ServiceUltra
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceUnknown:  "unknown",
		ServiceStandard: "standard",
		ServiceExpress:  "express",
		ServiceUltra:    "ultra",
	}
}

// Validate checks that the ServiceType value is one of the defined tiers.
func (s ServiceType) Validate() error {
	if s == ServiceUnknown {
		return errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%d is not a valid service type", int(s)))
	}
	if _, ok := getServiceTypeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%d is not a valid service type", int(s)))
	}
	return nil
}

// String returns the wire name of the service type, e.g. "express".
func (s ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ServiceTypeFromString parses a wire service-type name.
func ServiceTypeFromString(s string) (ServiceType, error) {
	for st, name := range getServiceTypeStrings() {
		if name == s && st != ServiceUnknown {
			return st, nil
		}
	}
	return ServiceUnknown, errs.NewValueIsInvalidErrorWithCause("service type", fmt.Errorf("%q is not a valid service type", s))
}
