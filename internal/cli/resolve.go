package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProfileID accepts a full ID, a unique ID prefix or a profile name
// (case-insensitive).
func resolveProfileID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("profile ID is required")
	}

	profiles, err := app.Profiles.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range profiles {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range profiles {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("profile not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("profile ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveOptionalProfileID resolves a --target style flag, passing "" through.
func resolveOptionalProfileID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return resolveProfileID(ctx, app, input)
}
