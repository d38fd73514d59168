package cli

import "fmt"

// resolveID matches arg against a list of entity IDs, accepting either
// an exact ID or a unique prefix. Short prefixes keep the commands
// usable with UUID keys.
func resolveID(ids []string, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("missing id")
	}
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if len(arg) <= len(id) && id[:len(arg)] == arg {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no entry matches %q", arg)
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}
