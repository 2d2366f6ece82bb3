package espn

import "testing"

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name         string
		baseURL      string
		allowedHosts []string
		wantErr      bool
	}{
		{
			name:    "default when empty",
			baseURL: "",
		},
		{
			name:    "site api with trailing slash",
			baseURL: "https://site.api.espn.com/",
		},
		{
			name:    "reject non-absolute URL",
			baseURL: "site.api.espn.com",
			wantErr: true,
		},
		{
			name:    "reject http",
			baseURL: "http://site.api.espn.com",
			wantErr: true,
		},
		{
			name:    "reject unknown host by default",
			baseURL: "https://evil.example",
			wantErr: true,
		},
		{
			name:         "allow configured host",
			baseURL:      "https://mirror.internal:8443",
			allowedHosts: []string{"https://mirror.internal:8443/"},
		},
		{
			name:    "reject userinfo",
			baseURL: "https://user:pw@site.api.espn.com",
			wantErr: true,
		},
		{
			name:    "reject query",
			baseURL: "https://site.api.espn.com?x=1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.baseURL, tt.allowedHosts)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeAllowedHosts_DefaultWhenEmpty(t *testing.T) {
	out := normalizeAllowedHosts([]string{" ", "https://", "http://"})
	if len(out) != len(defaultAllowedHosts) {
		t.Fatalf("expected default allowed hosts, got %v", out)
	}
}
