package dnsupdate

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

func TestRenderAQualifiesRelativeOwnerName(t *testing.T) {
	rr, err := RenderA("example.com.", bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "10.0.0.1", TTL: 300})
	require.NoError(t, err)
	a, ok := rr.(*dns.A)
	require.True(t, ok)
	assert.Equal(t, "www.example.com.", a.Hdr.Name)
	assert.Equal(t, "10.0.0.1", a.A.String())
	assert.Equal(t, uint32(300), a.Hdr.Ttl)
}

func TestRenderAAtSignMapsToApex(t *testing.T) {
	rr, err := RenderA("example.com.", bindyv1beta1.ARecordSpec{OwnerName: "@", IPv4Address: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "example.com.", rr.Header().Name)
}

func TestRenderARejectsInvalidAddress(t *testing.T) {
	_, err := RenderA("example.com.", bindyv1beta1.ARecordSpec{OwnerName: "www", IPv4Address: "not-an-ip"})
	require.Error(t, err)
}

func TestRenderAAAARejectsIPv4Address(t *testing.T) {
	_, err := RenderAAAA("example.com.", bindyv1beta1.AAAARecordSpec{OwnerName: "www", IPv6Address: "10.0.0.1"})
	require.Error(t, err)
}

func TestRenderCNAMEFullyQualifiesTarget(t *testing.T) {
	rr, err := RenderCNAME("example.com.", bindyv1beta1.CNAMERecordSpec{OwnerName: "alias", Target: "canonical.example.com"})
	require.NoError(t, err)
	cname, ok := rr.(*dns.CNAME)
	require.True(t, ok)
	assert.Equal(t, "canonical.example.com.", cname.Target)
}

func TestRenderSRVPreservesAllFields(t *testing.T) {
	rr, err := RenderSRV("example.com.", bindyv1beta1.SRVRecordSpec{
		OwnerName: "_sip._tcp",
		Priority:  10,
		Weight:    20,
		Port:      5060,
		Target:    "sipserver.example.com.",
	})
	require.NoError(t, err)
	srv, ok := rr.(*dns.SRV)
	require.True(t, ok)
	assert.Equal(t, uint16(10), srv.Priority)
	assert.Equal(t, uint16(20), srv.Weight)
	assert.Equal(t, uint16(5060), srv.Port)
}

func TestClassifyRcodes(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, classify(dns.RcodeSuccess))
	assert.Equal(t, OutcomeTransient, classify(dns.RcodeServerFailure))
	assert.Equal(t, OutcomePermanent, classify(dns.RcodeRefused))
	assert.Equal(t, OutcomeNotConfigured, classify(dns.RcodeNameError))
	assert.Equal(t, OutcomeNotConfigured, classify(dns.RcodeNotZone))
}
