package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	VaultOptions

	// Pattern filters services with a glob. Service names are matched like
	// slash-separated paths, so "work/**" matches "work/github" and
	// "work/aws/prod". Empty lists everything.
	Pattern string
}

// ListResult contains the stored service names in sorted order.
type ListResult struct {
	Services  []string
	Total     int
	VaultPath string
}

// List returns the services stored in the vault. No password is decrypted.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", opts.Pattern)
	}

	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	services := eng.List()
	result := &ListResult{
		Services:  services,
		Total:     len(services),
		VaultPath: eng.Path(),
	}

	if opts.Pattern != "" {
		result.Services = matchServices(services, opts.Pattern)
	}

	return result, nil
}

// matchServices keeps the services that match a validated pattern.
func matchServices(services []string, pattern string) []string {
	matched := make([]string, 0, len(services))
	for _, s := range services {
		if ok, _ := doublestar.Match(pattern, s); ok {
			matched = append(matched, s)
		}
	}
	return matched
}
