package domain

import (
	"encoding/json"
	"fmt"
)

// BadgeScope is a ranking dimension a badge is awarded in.
type BadgeScope string

const (
	ScopeGlobal    BadgeScope = "GLOBAL"
	ScopeDaily     BadgeScope = "DAILY"
	ScopeRegion    BadgeScope = "REGION"
	ScopeChallenge BadgeScope = "CHALLENGE"
)

var AllScopes = []BadgeScope{ScopeGlobal, ScopeDaily, ScopeRegion, ScopeChallenge}

func (s BadgeScope) Valid() bool {
	switch s {
	case ScopeGlobal, ScopeDaily, ScopeRegion, ScopeChallenge:
		return true
	}
	return false
}

// RequiresName reports whether badges of this scope are keyed by a named sub-scope.
func (s BadgeScope) RequiresName() bool {
	return s == ScopeRegion || s == ScopeChallenge
}

func ParseBadgeScope(v string) (BadgeScope, error) {
	s := BadgeScope(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown badge scope %q", ErrInvalidBadgeKey, v)
	}
	return s, nil
}

// SubScope is either Global() (stored as NULL) or Named(x).
// The zero value is Global().
type SubScope struct {
	name  string
	named bool
}

func Global() SubScope {
	return SubScope{}
}

func Named(name string) SubScope {
	return SubScope{name: name, named: true}
}

// SubScopeFromNullable converts a nullable column value.
func SubScopeFromNullable(v *string) SubScope {
	if v == nil {
		return Global()
	}
	return Named(*v)
}

// Value returns the sub-scope name and false for Global().
func (s SubScope) Value() (string, bool) {
	return s.name, s.named
}

func (s SubScope) IsGlobal() bool {
	return !s.named
}

func (s SubScope) Nullable() *string {
	if !s.named {
		return nil
	}
	name := s.name
	return &name
}

func (s SubScope) String() string {
	if !s.named {
		return "<global>"
	}
	return s.name
}

// MarshalJSON encodes Global() as null.
func (s SubScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Nullable())
}

func (s *SubScope) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SubScopeFromNullable(v)
	return nil
}

// ValidateBadgeKey checks that scope and sub-scope agree.
func ValidateBadgeKey(scope BadgeScope, sub SubScope) error {
	if !scope.Valid() {
		return fmt.Errorf("%w: unknown badge scope %q", ErrInvalidBadgeKey, scope)
	}
	name, named := sub.Value()
	switch {
	case scope.RequiresName() && !named:
		return fmt.Errorf("%w: %s badges need a named sub-scope", ErrInvalidBadgeKey, scope)
	case scope.RequiresName() && name == "":
		return fmt.Errorf("%w: %s sub-scope name is empty", ErrInvalidBadgeKey, scope)
	case !scope.RequiresName() && named:
		return fmt.Errorf("%w: %s badges take no sub-scope, got %q", ErrInvalidBadgeKey, scope, name)
	}
	return nil
}

// RankedUser is one row of a scope's ordered leaderboard.
type RankedUser struct {
	UserID string `json:"user_id"`
	Rank   int    `json:"rank"`
}
