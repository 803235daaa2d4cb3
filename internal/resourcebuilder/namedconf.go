package resourcebuilder

import (
	"bytes"
	"text/template"

	bindyv1beta1 "github.com/firestoned/bindy/api/v1beta1"
)

// namedConfTemplate renders the options and ACL stanzas BIND9 needs at
// startup. Zone stanzas are not rendered here: zones are installed at
// runtime through the zone-admin sidecar's addzone API (spec §4.2), not by
// rewriting this file, so the template only needs to be re-rendered when
// the instance's own config changes.
var namedConfTemplate = template.Must(template.New("named.conf").Parse(`
options {
	directory "/var/cache/bind";
	listen-on { any; };
	listen-on-v6 { any; };
	allow-query { any; };
	recursion no;
{{- if .Forwarders }}
	forwarders {
{{- range .Forwarders }}
		{{ . }};
{{- end }}
	};
{{- end }}
};

{{- range .ACLs }}
acl "{{ .Name }}" {
{{- range .Entries }}
	{{ . }};
{{- end }}
};
{{- end }}

{{- if .DNSSECPolicy }}
dnssec-policy "{{ .DNSSECPolicy }}" {
};
{{- end }}

include "/var/lib/bind/zones/zones.conf";
`))

// RenderNamedConf produces the named.conf content for an instance's
// effective configuration. zones.conf (included above) is a separate file
// the zone-admin sidecar rewrites directly as zones are added and removed;
// this function never touches it.
func RenderNamedConf(config bindyv1beta1.Bind9ServerConfig) (string, error) {
	var buf bytes.Buffer
	if err := namedConfTemplate.Execute(&buf, config); err != nil {
		return "", err
	}
	return buf.String(), nil
}
