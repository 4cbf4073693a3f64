package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an authority carried in an access token
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBanker   Role = "BANKER"
)

// RoleSeparator joins roles inside the token's auth claim
const RoleSeparator = ","

// GrantTypeBearer is the grant type returned with every token pair
const GrantTypeBearer = "Bearer"

// ParseRole validates a single role name
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleCustomer, RoleBanker:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RoleSet is an ordered, duplicate-free list of roles
type RoleSet []Role

// NewRoleSet builds a RoleSet keeping the first occurrence of each role
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, 0, len(roles))
	for _, r := range roles {
		if !set.Has(r) {
			set = append(set, r)
		}
	}
	return set
}

// ParseRoleSet parses the comma-joined wire form of the auth claim.
// An empty claim or an unknown role is an error.
func ParseRoleSet(claim string) (RoleSet, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, fmt.Errorf("empty role claim")
	}

	parts := strings.Split(claim, RoleSeparator)
	roles := make([]Role, 0, len(parts))
	for _, p := range parts {
		r, err := ParseRole(p)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return NewRoleSet(roles...), nil
}

// Has reports whether the set contains role
func (s RoleSet) Has(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// String returns the wire form, e.g. "CUSTOMER,BANKER"
func (s RoleSet) String() string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = string(r)
	}
	return strings.Join(names, RoleSeparator)
}

// Identity is the authenticated principal resolved from an access token
type Identity struct {
	Subject string  `json:"subject"`
	Roles   RoleSet `json:"roles"`
	Email   string  `json:"email"`
}

// HasRole reports whether the identity carries role
func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Roles.Has(role)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	GrantType    string    `json:"grant_type"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
