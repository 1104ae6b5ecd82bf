package naming

import "fmt"

const workspaceIDMaxLength = 48

// ValidateWorkspaceID checks that an id is safe to embed in network-visible
// hostnames and engine resource names: lowercase alphanumerics and hyphens,
// starting and ending with an alphanumeric. The 48-char cap keeps derived
// hostname labels within the DNS label limit after role prefixes are added.
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return fmt.Errorf("workspace id must not be empty")
	}
	if len(id) > workspaceIDMaxLength {
		return fmt.Errorf("workspace id exceeds %d characters", workspaceIDMaxLength)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-':
			if i == 0 || i == len(id)-1 {
				return fmt.Errorf("workspace id must not start or end with a hyphen")
			}
		default:
			return fmt.Errorf("workspace id contains invalid character %q", c)
		}
	}
	return nil
}

// ValidateBaseDomain checks that a configured base domain is a plausible
// DNS name: non-empty dot-separated labels of alphanumerics and hyphens.
func ValidateBaseDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("base domain must not be empty")
	}
	start := 0
	for i := 0; i <= len(domain); i++ {
		if i == len(domain) || domain[i] == '.' {
			label := domain[start:i]
			if label == "" {
				return fmt.Errorf("base domain contains an empty label")
			}
			for j := 0; j < len(label); j++ {
				c := label[j]
				switch {
				case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
				case c == '-':
					if j == 0 || j == len(label)-1 {
						return fmt.Errorf("base domain label must not start or end with a hyphen")
					}
				default:
					return fmt.Errorf("base domain contains invalid character %q", c)
				}
			}
			start = i + 1
		}
	}
	return nil
}
