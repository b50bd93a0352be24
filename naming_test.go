package taskcodec

import "testing"

func TestNamingPolicies(t *testing.T) {
	cases := []struct {
		policy NamingPolicy
		in     string
		want   string
	}{
		{SnakeCase, "StartTimestamp", "start_timestamp"},
		{SnakeCase, "startTimestamp", "start_timestamp"},
		{SnakeCase, "TargetHost", "target_host"},
		{SnakeCase, "Count", "count"},
		{SnakeCase, "target_host", "target_host"},
		{SnakeCase, "Ipv6Host", "ipv6_host"},
		{SnakeCase, "Hop2Addr", "hop2_addr"},
		{SnakeCase, "Hop2addr", "hop2addr"},
		{SnakeCase, "PacketSizeByte", "packet_size_byte"},
		{SnakeCase, "HTTP2Server", "http2_server"},
		{SnakeCase, "Port443", "port443"},
		{SnakeCase, "JSONData", "json_data"},
		{LowerCamel, "StartTimestamp", "startTimestamp"},
		{Verbatim, "StartTimestamp", "StartTimestamp"},
		{NamingFunc(func(s string) string { return "x_" + s }), "A", "x_A"},
	}
	for _, tc := range cases {
		if got := tc.policy.Key(tc.in); got != tc.want {
			t.Fatalf("Key(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
