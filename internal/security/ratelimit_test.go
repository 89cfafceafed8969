package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	rl.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("fourth request in window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other clients have their own budget")
	}
	if got := rl.RetryAfter("1.2.3.4"); got != time.Minute {
		t.Errorf("RetryAfter() = %v, want 1m", got)
	}

	clock = clock.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("budget should refill after the window")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return clock }

	rl.Allow("a")
	clock = clock.Add(3 * time.Minute)
	rl.Allow("b")
	rl.cleanup()

	if _, ok := rl.visitors["a"]; ok {
		t.Error("stale visitor should be evicted")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("fresh visitor should be kept")
	}
}

func TestGetClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8"})
	if err != nil {
		t.Fatalf("ParseTrustedProxies() error = %v", err)
	}

	tests := []struct {
		name    string
		trusted TrustedProxies
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain via proxy", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, remote: "127.0.0.1:1234", want: "203.0.113.7"},
		{name: "spoofed hop left of real client", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7"}, remote: "127.0.0.1:1234", want: "203.0.113.7"},
		{name: "real ip via proxy", trusted: trusted, headers: map[string]string{"X-Real-IP": "203.0.113.9"}, remote: "10.1.2.3:1234", want: "203.0.113.9"},
		{name: "forwarded header from untrusted peer", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, remote: "192.168.1.5:5555", want: "192.168.1.5"},
		{name: "real ip from untrusted peer", trusted: trusted, headers: map[string]string{"X-Real-IP": "198.51.100.1"}, remote: "192.168.1.5:5555", want: "192.168.1.5"},
		{name: "no proxies configured", headers: map[string]string{"X-Forwarded-For": "198.51.100.1"}, remote: "127.0.0.1:1234", want: "127.0.0.1"},
		{name: "remote addr", trusted: trusted, remote: "192.168.1.5:5555", want: "192.168.1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req, tt.trusted); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		trusts  string
		wantErr bool
	}{
		{name: "single address", entries: []string{"192.0.2.1"}, trusts: "192.0.2.1"},
		{name: "cidr range", entries: []string{"172.16.0.0/12"}, trusts: "172.20.1.1"},
		{name: "ipv6", entries: []string{"::1"}, trusts: "::1"},
		{name: "blank entries skipped", entries: []string{" ", "192.0.2.1"}, trusts: "192.0.2.1"},
		{name: "garbage", entries: []string{"not-an-ip"}, wantErr: true},
		{name: "bad cidr", entries: []string{"10.0.0.0/99"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxies, err := ParseTrustedProxies(tt.entries)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTrustedProxies() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !proxies.trusts(tt.trusts) {
				t.Errorf("expected %s to be trusted by %v", tt.trusts, proxies)
			}
		})
	}
}
