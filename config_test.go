package mailtrap

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		config    Config
		wantField string
	}{
		{
			name:      "missing api key",
			config:    Config{APIPort: 443},
			wantField: "api_key",
		},
		{
			name:      "invalid port",
			config:    Config{APIKey: "key", APIPort: 0},
			wantField: "api_port",
		},
		{
			name:      "bulk with sandbox",
			config:    Config{APIKey: "key", APIPort: 443, Bulk: true, Sandbox: true, InboxID: 1},
			wantField: "bulk",
		},
		{
			name:      "sandbox without inbox",
			config:    Config{APIKey: "key", APIPort: 443, Sandbox: true},
			wantField: "inbox_id",
		},
		{
			name:   "valid",
			config: Config{APIKey: "key", APIPort: 443},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.config.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want *ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Field: got %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}

func TestSelectSendHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, SendingAPIHost},
		{"bulk", Config{Bulk: true}, BulkSendingAPIHost},
		{"sandbox", Config{Sandbox: true, InboxID: 7}, SandboxAPIHost},
		{"explicit host wins", Config{Bulk: true, APIHost: "proxy.internal"}, "proxy.internal"},
	}

	for _, tc := range cases {
		if got := tc.config.selectSendHost(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
