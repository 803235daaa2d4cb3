package dnsupdate

import (
	"fmt"
	"net"

	"github.com/miekg/dns"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// RenderA builds the A record RR for an ARecord spec.
func RenderA(zone string, spec bindyv1beta1.ARecordSpec) (dns.RR, error) {
	ip := net.ParseIP(spec.IPv4Address)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid IPv4 address %q", spec.IPv4Address)
	}
	return &dns.A{
		Hdr: header(zone, spec.OwnerName, dns.TypeA, spec.TTL),
		A:   ip,
	}, nil
}

// RenderAAAA builds the AAAA record RR for an AAAARecord spec.
func RenderAAAA(zone string, spec bindyv1beta1.AAAARecordSpec) (dns.RR, error) {
	ip := net.ParseIP(spec.IPv6Address)
	if ip == nil || ip.To4() != nil {
		return nil, fmt.Errorf("invalid IPv6 address %q", spec.IPv6Address)
	}
	return &dns.AAAA{
		Hdr:  header(zone, spec.OwnerName, dns.TypeAAAA, spec.TTL),
		AAAA: ip,
	}, nil
}

// RenderCNAME builds the CNAME record RR for a CNAMERecord spec.
func RenderCNAME(zone string, spec bindyv1beta1.CNAMERecordSpec) (dns.RR, error) {
	return &dns.CNAME{
		Hdr:    header(zone, spec.OwnerName, dns.TypeCNAME, spec.TTL),
		Target: dns.Fqdn(spec.Target),
	}, nil
}

// RenderMX builds the MX record RR for an MXRecord spec.
func RenderMX(zone string, spec bindyv1beta1.MXRecordSpec) (dns.RR, error) {
	return &dns.MX{
		Hdr:        header(zone, spec.OwnerName, dns.TypeMX, spec.TTL),
		Preference: spec.Priority,
		Mx:         dns.Fqdn(spec.Target),
	}, nil
}

// RenderTXT builds the TXT record RR for a TXTRecord spec.
func RenderTXT(zone string, spec bindyv1beta1.TXTRecordSpec) (dns.RR, error) {
	return &dns.TXT{
		Hdr: header(zone, spec.OwnerName, dns.TypeTXT, spec.TTL),
		Txt: spec.Values,
	}, nil
}

// RenderNS builds the NS record RR for an NSRecord spec.
func RenderNS(zone string, spec bindyv1beta1.NSRecordSpec) (dns.RR, error) {
	return &dns.NS{
		Hdr: header(zone, spec.OwnerName, dns.TypeNS, spec.TTL),
		Ns:  dns.Fqdn(spec.Nameserver),
	}, nil
}

// RenderSRV builds the SRV record RR for an SRVRecord spec.
func RenderSRV(zone string, spec bindyv1beta1.SRVRecordSpec) (dns.RR, error) {
	return &dns.SRV{
		Hdr:      header(zone, spec.OwnerName, dns.TypeSRV, spec.TTL),
		Priority: spec.Priority,
		Weight:   spec.Weight,
		Port:     spec.Port,
		Target:   dns.Fqdn(spec.Target),
	}, nil
}

// RenderCAA builds the CAA record RR for a CAARecord spec.
func RenderCAA(zone string, spec bindyv1beta1.CAARecordSpec) (dns.RR, error) {
	return &dns.CAA{
		Hdr:   header(zone, spec.OwnerName, dns.TypeCAA, spec.TTL),
		Flag:  spec.Flag,
		Tag:   spec.Tag,
		Value: spec.Value,
	}, nil
}

// header builds the common RR_Header.
func header(zone, ownerName string, rrtype uint16, ttl uint32) dns.RR_Header {
	return dns.RR_Header{Name: OwnerFQDN(zone, ownerName), Rrtype: rrtype, Class: dns.ClassINET, Ttl: ttl}
}

// OwnerFQDN resolves ownerName against zone the way every record kind does:
// "@" or empty means the zone apex, an already-qualified name (trailing dot)
// is used as-is, anything else is treated as relative to zone (spec §3:
// owner names may be given fully qualified or zone-relative). Exported so
// the record controllers can resolve the same name for a DELETE without
// needing a fully valid rdata to render first.
func OwnerFQDN(zone, ownerName string) string {
	switch {
	case ownerName == "@" || ownerName == "":
		return dns.Fqdn(zone)
	case dns.IsFqdn(ownerName):
		return ownerName
	default:
		return dns.Fqdn(ownerName + "." + zone)
	}
}
