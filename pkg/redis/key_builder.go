package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Church-scoped collection keys

func (kb *KeyBuilder) KeyChurchMembers(churchID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChurchMembers, churchID))
}

func (kb *KeyBuilder) KeyChurchRequests(churchID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChurchRequests, churchID))
}

func (kb *KeyBuilder) KeyChurchRoles(churchID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChurchRoles, churchID))
}

func (kb *KeyBuilder) KeyChurchRolesMap(churchID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChurchRolesMap, churchID))
}

func (kb *KeyBuilder) KeyChurchTeams(churchID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChurchTeams, churchID))
}

// Team-scoped collection keys

func (kb *KeyBuilder) KeyTeamByID(teamID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamByID, teamID))
}

func (kb *KeyBuilder) KeyTeamMembers(teamID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamMembers, teamID))
}

func (kb *KeyBuilder) KeyTeamGroups(teamID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamGroups, teamID))
}

func (kb *KeyBuilder) KeyGroupMembers(groupID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGroupMembers, groupID))
}

func (kb *KeyBuilder) KeyTeamCalendar(teamID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamCalendar, teamID))
}

func (kb *KeyBuilder) KeyTeamDocuments(teamID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamDocuments, teamID))
}

// KeyCustom builds a key from a custom pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(pattern, args...))
}
