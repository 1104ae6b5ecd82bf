package naming

import (
	"strings"
	"testing"
)

func TestValidateWorkspaceID(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid short", value: "ws1", wantErr: false},
		{name: "valid uuid style", value: "ws-0b7e54a1-9c2f-4d6e-8a3b-1f2e3d4c5b6a", wantErr: false},
		{name: "valid max length", value: strings.Repeat("a", workspaceIDMaxLength), wantErr: false},
		{name: "too long", value: strings.Repeat("a", workspaceIDMaxLength+1), wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "contains uppercase", value: "Ws1", wantErr: true},
		{name: "contains underscore", value: "ws_1", wantErr: true},
		{name: "contains dot", value: "ws.1", wantErr: true},
		{name: "contains slash", value: "ws/1", wantErr: true},
		{name: "starts with hyphen", value: "-ws1", wantErr: true},
		{name: "ends with hyphen", value: "ws1-", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWorkspaceID(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateBaseDomain(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "dev.example.com", wantErr: false},
		{name: "valid single label", value: "localhost", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "empty label", value: "dev..com", wantErr: true},
		{name: "trailing dot", value: "dev.example.com.", wantErr: true},
		{name: "invalid char", value: "dev_x.example.com", wantErr: true},
		{name: "label starts with hyphen", value: "-dev.example.com", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBaseDomain(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
