package utils

import "testing"

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{
		"http://localhost:3000",
		"http://127.0.0.1:8485",
		"http://192.168.1.50",
		"http://10.1.2.3:8080",
		"http://mybox.local",
		"http://nas",
	}
	for _, origin := range allowed {
		if !IsAllowedOrigin(origin) {
			t.Errorf("expected %q to be allowed", origin)
		}
	}

	blocked := []string{
		"",
		"not a url",
		"https://evil.example.com",
		"http://8.8.8.8",
	}
	for _, origin := range blocked {
		if IsAllowedOrigin(origin) {
			t.Errorf("expected %q to be blocked", origin)
		}
	}
}
