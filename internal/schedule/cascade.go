package schedule

import "tempo/internal/core"

// clearCategoryRefs blanks the category field on every entry that
// references the given name, in place. It mirrors the store's cascade
// after a successful category delete and must only run once the store
// confirmed; it is not a substitute for the server-side cascade.
// Returns the number of entries cleared.
func clearCategoryRefs(entries []core.TimeEntry, name string) int {
	if name == "" {
		return 0
	}
	cleared := 0
	for i := range entries {
		if entries[i].Category == name {
			entries[i].Category = ""
			cleared++
		}
	}
	return cleared
}
