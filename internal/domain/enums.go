package domain

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityLater  Priority = "later"
	PriorityDone   Priority = "done"
)

// PriorityRank returns the fixed display rank of a priority
// (lower = shown first). Unknown values sort after all known ones.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityLater:
		return 1
	case PriorityDone:
		return 2
	default:
		return 3
	}
}

// PriorityLabels maps each priority to its display label.
var PriorityLabels = map[Priority]string{
	PriorityUrgent: "KHẨN",
	PriorityLater:  "SAU",
	PriorityDone:   "XONG",
}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"urgent": true, "later": true, "done": true,
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type FileType string

const (
	FileWord FileType = "word"
	FilePDF  FileType = "pdf"
)

type SortOrder string

const (
	SortAsc      SortOrder = "asc"
	SortDesc     SortOrder = "desc"
	SortPriority SortOrder = "priority"
)

// PriorityAll is the filter value that passes every priority through.
const PriorityAll = "all"
