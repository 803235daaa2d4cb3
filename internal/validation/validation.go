// Package validation catches permanent configuration errors in a spec
// before a reconciler does any side effect (spec §7): a malformed zone
// name or an SOA field out of range should stall the resource with a clear
// message instead of retrying forever or being rejected piecemeal by
// whichever BIND9 call happens to touch the bad field first.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// dnsNamePattern matches a fully qualified DNS name with a trailing dot,
// the same shape the CRD's kubebuilder validation pattern enforces for
// DNSZoneSpec.ZoneName.
var dnsNamePattern = regexp.MustCompile(`^([a-zA-Z0-9_]([a-zA-Z0-9-_]*[a-zA-Z0-9_])?\.)+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dnsname", func(fl validator.FieldLevel) bool {
		return dnsNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// zoneSpec carries the struct tags DNSZoneSpec itself doesn't (it's a
// CRD wire type, not a validation-owned one).
type zoneSpec struct {
	ZoneName string `validate:"required,dnsname"`
}

// ValidateDNSZoneSpec reports every struct-tag violation in spec.ZoneName
// and spec.SOA as one joined error, or nil if spec is well-formed.
func ValidateDNSZoneSpec(spec bindyv1beta1.DNSZoneSpec) error {
	var msgs []string
	if err := validate.Struct(zoneSpec{ZoneName: spec.ZoneName}); err != nil {
		msgs = append(msgs, humanize(err).Error())
	}
	if err := ValidateSOAConfig(spec.SOA); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// soaConfig mirrors SOAConfig's field-by-field range constraints (spec §3:
// refresh/retry/expire/negativeTTL are all positive durations in seconds,
// defaulted by the CRD when omitted).
type soaConfig struct {
	PrimaryNS    string `validate:"required,dnsname"`
	AdminMailbox string `validate:"required"`
	Refresh      uint32 `validate:"gt=0"`
	Retry        uint32 `validate:"gt=0"`
	Expire       uint32 `validate:"gt=0"`
	NegativeTTL  uint32 `validate:"gt=0"`
}

// ValidateSOAConfig reports whether soa's fields are all in range, treating
// a zero field as the CRD default rather than a violation.
func ValidateSOAConfig(soa bindyv1beta1.SOAConfig) error {
	err := validate.Struct(soaConfig{
		PrimaryNS:    soa.PrimaryNS,
		AdminMailbox: soa.AdminMailbox,
		Refresh:      orDefault(soa.Refresh, 3600),
		Retry:        orDefault(soa.Retry, 900),
		Expire:       orDefault(soa.Expire, 1209600),
		NegativeTTL:  orDefault(soa.NegativeTTL, 3600),
	})
	if err != nil {
		return humanize(err)
	}
	return nil
}

func orDefault(v, def uint32) uint32 {
	if v == 0 {
		return def
	}
	return v
}

// humanize turns validator's field-error slice into one readable sentence,
// matching the style of a single aggregated Stalled condition message.
func humanize(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
