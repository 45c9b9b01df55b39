package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		isLoggedIn bool
		path       string
		want       Decision
	}{
		{"anonymous on dashboard child", false, "/dashboard/x", Decision{Kind: Deny}},
		{"anonymous on dashboard root", false, "/dashboard", Decision{Kind: Deny}},
		{"signed in on dashboard root", true, "/dashboard", Decision{Kind: Allow}},
		{"signed in on invoices", true, "/dashboard/invoices/123/edit", Decision{Kind: Allow}},
		{"signed in on login", true, "/login", Decision{Kind: Redirect, Location: "/dashboard"}},
		{"signed in on home", true, "/", Decision{Kind: Redirect, Location: "/dashboard"}},
		{"anonymous on login", false, "/login", Decision{Kind: Allow}},
		{"anonymous on home", false, "/", Decision{Kind: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.isLoggedIn, tt.path))
		})
	}
}

func TestAuthorize_IsStateless(t *testing.T) {
	assert.Equal(t, Deny, Authorize(false, "/dashboard").Kind)
	assert.Equal(t, Allow, Authorize(true, "/dashboard").Kind)
	assert.Equal(t, Deny, Authorize(false, "/dashboard").Kind)
}

func TestDecisionKind_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny", Deny.String())
	assert.Equal(t, "redirect", Redirect.String())
}
