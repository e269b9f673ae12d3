package domain

import (
	"fmt"
	"strings"
	"time"
)

// Profile is a named posture snapshot (current or target) for an organization.
type Profile struct {
	ID        string
	Name      string
	Kind      ProfileKind
	OrgName   string
	Industry  string
	Size      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Kind != ProfileCurrent && p.Kind != ProfileTarget {
		return fmt.Errorf("profile kind must be current or target, got %q", p.Kind)
	}
	return nil
}

// DisplayID returns a shortened identifier for display.
func (p *Profile) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
