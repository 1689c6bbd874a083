package redis

import (
	"testing"
)

func TestKeyBuilder_Environment_Prefixes(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{
			name:           "Production environment should use prod prefix",
			environment:    "production",
			expectedPrefix: "prod",
		},
		{
			name:           "Development environment should use staging prefix",
			environment:    "development",
			expectedPrefix: "staging",
		},
		{
			name:           "Staging environment should use staging prefix",
			environment:    "staging",
			expectedPrefix: "staging",
		},
		{
			name:           "Test environment should use staging prefix",
			environment:    "test",
			expectedPrefix: "staging",
		},
		{
			name:           "Unknown environment should default to prod prefix",
			environment:    "unknown",
			expectedPrefix: "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("NewKeyBuilder(%s).GetPrefix() = %s, want %s",
					tt.environment, kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_ChurchKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		method   func() string
		expected string
	}{
		{
			name:     "ChurchMembers key",
			method:   func() string { return kb.KeyChurchMembers("c1") },
			expected: "prod:church:c1:members",
		},
		{
			name:     "ChurchRequests key",
			method:   func() string { return kb.KeyChurchRequests("c1") },
			expected: "prod:church:c1:requests",
		},
		{
			name:     "ChurchRoles key",
			method:   func() string { return kb.KeyChurchRoles("c1") },
			expected: "prod:church:c1:roles",
		},
		{
			name:     "ChurchRolesMap key",
			method:   func() string { return kb.KeyChurchRolesMap("c1") },
			expected: "prod:church:c1:roles:map",
		},
		{
			name:     "ChurchTeams key",
			method:   func() string { return kb.KeyChurchTeams("c1") },
			expected: "prod:church:c1:teams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.method()
			if result != tt.expected {
				t.Errorf("%s = %s, want %s", tt.name, result, tt.expected)
			}
		})
	}
}

func TestKeyBuilder_TeamKeys(t *testing.T) {
	kb := NewKeyBuilder("staging")

	tests := []struct {
		name     string
		method   func() string
		expected string
	}{
		{
			name:     "TeamByID key",
			method:   func() string { return kb.KeyTeamByID("t1") },
			expected: "staging:team:t1",
		},
		{
			name:     "TeamMembers key",
			method:   func() string { return kb.KeyTeamMembers("t1") },
			expected: "staging:team:t1:members",
		},
		{
			name:     "TeamGroups key",
			method:   func() string { return kb.KeyTeamGroups("t1") },
			expected: "staging:team:t1:groups",
		},
		{
			name:     "GroupMembers key",
			method:   func() string { return kb.KeyGroupMembers("g1") },
			expected: "staging:group:g1:members",
		},
		{
			name:     "TeamCalendar key",
			method:   func() string { return kb.KeyTeamCalendar("t1") },
			expected: "staging:team:t1:calendar",
		},
		{
			name:     "TeamDocuments key",
			method:   func() string { return kb.KeyTeamDocuments("t1") },
			expected: "staging:team:t1:documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.method()
			if result != tt.expected {
				t.Errorf("%s = %s, want %s", tt.name, result, tt.expected)
			}
		})
	}
}

func TestKeyBuilder_EnvironmentSeparation(t *testing.T) {
	prodKB := NewKeyBuilder("production")
	stagingKB := NewKeyBuilder("development")

	prodKey := prodKB.KeyChurchMembers("c1")
	stagingKey := stagingKB.KeyChurchMembers("c1")

	if prodKey == stagingKey {
		t.Errorf("Production and staging keys should be different. Got: prod=%s, staging=%s",
			prodKey, stagingKey)
	}
}

func TestKeyBuilder_CustomKey(t *testing.T) {
	kb := NewKeyBuilder("production")

	result := kb.KeyCustom("custom:%s:%d", "user", 7)
	expected := "prod:custom:user:7"
	if result != expected {
		t.Errorf("KeyCustom = %s, want %s", result, expected)
	}
}
