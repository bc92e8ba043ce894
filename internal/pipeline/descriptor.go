package pipeline

import (
	"fmt"
	"strings"
)

// Impact is the confirmation impact level of an operation.
type Impact int

const (
	ImpactNone Impact = iota
	ImpactLow
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactNone:
		return "none"
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	case ImpactHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseImpact converts a flag value into an Impact.
func ParseImpact(s string) (Impact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ImpactNone, nil
	case "", "low":
		return ImpactLow, nil
	case "medium":
		return ImpactMedium, nil
	case "high":
		return ImpactHigh, nil
	default:
		return ImpactNone, fmt.Errorf("unknown confirm impact %q (none, low, medium, high)", s)
	}
}

// SuccessPolicy selects what a successful invocation emits as its output.
type SuccessPolicy int

const (
	// PassThrough emits the raw service response.
	PassThrough SuccessPolicy = iota
	// Identifier emits the value of the first identity parameter, used by
	// operations whose response carries nothing worth printing.
	Identifier
)

func (p SuccessPolicy) String() string {
	if p == Identifier {
		return "identifier"
	}
	return "pass-through"
}

// Descriptor is the static metadata of one remote operation. Descriptors are
// declared once as package variables and never mutated.
type Descriptor struct {
	// Name is the remote operation name, e.g. "DeleteApiKey".
	Name string
	// Noun is the human readable resource name used in prompts.
	Noun string

	Destructive bool
	Impact      Impact

	// Identity lists the parameters that identify the target resource.
	Identity []string

	Policy SuccessPolicy
}

// ConfirmImpact is the impact compared against the confirmation threshold.
// A destructive operation never ranks below ImpactLow.
func (d Descriptor) ConfirmImpact() Impact {
	if d.Destructive && d.Impact < ImpactLow {
		return ImpactLow
	}
	return d.Impact
}

// Summary renders the confirmation text for a destructive invocation.
func (d Descriptor) Summary(params Params) string {
	var parts []string
	for _, name := range d.Identity {
		if v, ok := params.Get(name); ok {
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}

	noun := d.Noun
	if noun == "" {
		noun = "resource"
	}

	target := strings.Join(parts, ", ")
	if target == "" {
		target = "<unidentified>"
	}

	return fmt.Sprintf("Performing %s on %s (%s), impact %s.", d.Name, noun, target, d.Impact)
}
