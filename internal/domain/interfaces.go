package domain

// Catalog is implemented by records that are either owned by one user or
// shared by default with everyone (food items and meals)
type Catalog interface {
	OwnerID() string
	Shared() bool
	HiddenFor(userID string) bool
}

// Hideable is a catalog record that can be hidden for a single user
type Hideable interface {
	Catalog
	Hide(userID string) bool
}

// IsVisible reports whether userID may see the record: owners always do,
// everyone else only when it is shared and not hidden for them.
func IsVisible(record Catalog, userID string) bool {
	if userID != "" && record.OwnerID() == userID {
		return true
	}
	return record.Shared() && !record.HiddenFor(userID)
}
