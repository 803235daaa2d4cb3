// Package dnsupdate issues RFC 2136 DNS UPDATE messages against a primary
// BIND9 instance, authenticated with a TSIG key (spec §4.3). Every update
// this package sends is a full RRset replace or delete; it never diffs
// against the server's current state first (spec §4.8 "replace is always
// idempotent").
package dnsupdate

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
	"github.com/sony/gobreaker"
)

const requestTimeout = 5 * time.Second

// tsigKeyAlgorithm is fixed at HMAC-SHA256 (spec §3, §4.1): every
// Bind9Instance key Secret carries one algorithm, there is no per-record or
// per-zone override.
const tsigKeyAlgorithm = dns.HmacSHA256

// Client issues DNS UPDATE messages against one primary instance.
type Client struct {
	addr    string // host:port of the primary's DNS listener
	keyName string
	keyB64  string
	breaker *gobreaker.CircuitBreaker
}

// New builds a Client for the primary reachable at addr, authenticating
// every message with the named TSIG key (base64-encoded HMAC-SHA256 secret,
// as stored in the instance's key Secret). onTrip, if non-nil, is called
// every time the breaker opens, letting callers surface
// bindy_circuit_breaker_trips_total.
func New(instanceName, addr, keyName, keyB64 string, onTrip func()) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dnsupdate:" + instanceName,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen && onTrip != nil {
				onTrip()
			}
		},
	})
	return &Client{addr: addr, keyName: dns.Fqdn(keyName), keyB64: keyB64, breaker: breaker}
}

// Outcome categorizes a DNS UPDATE response per the rcode taxonomy in
// spec §4.3: transient and not-configured outcomes are worth retrying,
// permanent ones are not.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTransient
	// OutcomeNotConfigured means the primary rejected the update because it
	// doesn't yet have the zone (NXDOMAIN/NOTZONE): the zone controller is
	// expected to create it shortly, so this is worth a short-delay retry
	// rather than a permanent failure (spec §4.3).
	OutcomeNotConfigured
	OutcomePermanent
)

// Result reports the categorized outcome of one UPDATE attempt.
type Result struct {
	Outcome Outcome
	RCode   int
	Err     error
}

// Replace installs rr as the sole member of its {owner, type} RRset on the
// zone, removing whatever RRset previously existed for that owner and type
// (spec §4.3, §4.8).
func (c *Client) Replace(ctx context.Context, zone string, rr dns.RR) (*Result, error) {
	msg := new(dns.Msg)
	msg.SetUpdate(dns.Fqdn(zone))
	msg.RemoveRRset([]dns.RR{rrsetWildcard(rr)})
	msg.Insert([]dns.RR{rr})
	return c.send(ctx, zone, msg)
}

// Delete removes the entire {owner, type} RRset named by owner/rrtype from
// the zone (spec §4.3).
func (c *Client) Delete(ctx context.Context, zone, owner string, rrtype uint16) (*Result, error) {
	msg := new(dns.Msg)
	msg.SetUpdate(dns.Fqdn(zone))
	rrHeader := &dns.RR_Header{Name: dns.Fqdn(owner), Rrtype: rrtype, Class: dns.ClassANY, Ttl: 0}
	msg.RemoveRRset([]dns.RR{rrHeaderToRR(rrHeader)})
	return c.send(ctx, zone, msg)
}

func (c *Client) send(ctx context.Context, zone string, msg *dns.Msg) (*Result, error) {
	tsigClient := &dns.Client{
		Net:     "tcp",
		Timeout: requestTimeout,
	}
	msg.SetTsig(c.keyName, tsigKeyAlgorithm, 300, time.Now().Unix())

	raw, err := c.breaker.Execute(func() (any, error) {
		secrets := map[string]string{c.keyName: c.keyB64}
		reply, _, dialErr := tsigClient.ExchangeContext(ctx, msg, c.addr, secrets)
		if dialErr != nil {
			return nil, fmt.Errorf("exchanging update for zone %s: %w", zone, dialErr)
		}
		if reply.Rcode != dns.RcodeSuccess {
			return &Result{Outcome: classify(reply.Rcode), RCode: reply.Rcode}, nil
		}
		return &Result{Outcome: OutcomeSuccess, RCode: reply.Rcode}, nil
	})
	if err != nil {
		return &Result{Outcome: OutcomeTransient, Err: err}, err
	}
	return raw.(*Result), nil
}

// classify maps an UPDATE response rcode to a retry-worthiness bucket
// (spec §4.3): SERVFAIL is transient (the primary may be momentarily
// overloaded); NXDOMAIN/NOTZONE mean the zone isn't configured on this
// primary yet, which the zone controller is expected to fix shortly, so
// it's also worth retrying; REFUSED (authentication failure) and
// FORMERROR reflect a request this primary will never accept as-is and
// are reported rather than retried.
func classify(rcode int) Outcome {
	switch rcode {
	case dns.RcodeSuccess:
		return OutcomeSuccess
	case dns.RcodeServerFailure:
		return OutcomeTransient
	case dns.RcodeNameError, dns.RcodeNotZone:
		return OutcomeNotConfigured
	case dns.RcodeRefused, dns.RcodeFormatError:
		return OutcomePermanent
	default:
		return OutcomePermanent
	}
}

// rrsetWildcard and rrHeaderToRR produce the zero-rdata RR RemoveRRset
// expects to identify an {owner, type} pair without needing the original
// record's actual data.

func rrsetWildcard(rr dns.RR) dns.RR {
	h := rr.Header()
	empty := dns.TypeToRR[h.Rrtype]()
	eh := empty.Header()
	eh.Name = h.Name
	eh.Rrtype = h.Rrtype
	eh.Class = dns.ClassANY
	eh.Ttl = 0
	return empty
}

func rrHeaderToRR(h *dns.RR_Header) dns.RR {
	empty := dns.TypeToRR[h.Rrtype]()
	eh := empty.Header()
	eh.Name = h.Name
	eh.Rrtype = h.Rrtype
	eh.Class = h.Class
	eh.Ttl = h.Ttl
	return empty
}
