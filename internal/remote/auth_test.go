package remote

import "testing"

func TestParseSSHTarget(t *testing.T) {
	tests := []struct {
		target   string
		wantUser string
		wantHost string
		wantErr  bool
	}{
		{"alice@fileserver", "alice", "fileserver", false},
		{"bob@10.0.0.5", "bob", "10.0.0.5", false},
		{"", "", "", true},
		{"   ", "", "", true},
		{"nouser", "", "", true},
		{"@host", "", "", true},
		{"user@", "", "", true},
	}
	for _, tt := range tests {
		user, host, err := parseSSHTarget(tt.target)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSSHTarget(%q) err = %v, wantErr %v", tt.target, err, tt.wantErr)
			continue
		}
		if user != tt.wantUser || host != tt.wantHost {
			t.Errorf("parseSSHTarget(%q) = (%q, %q), want (%q, %q)",
				tt.target, user, host, tt.wantUser, tt.wantHost)
		}
	}
}

func TestKnownHostAddress(t *testing.T) {
	if got := knownHostAddress("fileserver", 22); got != "fileserver" {
		t.Errorf("default port address = %q", got)
	}
	if got := knownHostAddress("fileserver", 2222); got != "[fileserver]:2222" {
		t.Errorf("custom port address = %q", got)
	}
}
