package domain

import "time"

// Member is a roster entry. Team is free text; some deployments used
// numeric team identifiers, which still round-trip as strings.
type Member struct {
	ID          string
	Name        string
	DateOfBirth time.Time
	Unit        string
	Team        string

	// Optional attached file.
	FileName   string
	StorageRef string

	CreatedAt time.Time
}

// SearchFields returns the strings a query is matched against:
// name and unit.
func (m Member) SearchFields() []string {
	return []string{m.Name, m.Unit}
}

func (m Member) CreatedTime() time.Time { return m.CreatedAt }
