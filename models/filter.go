package models

// PrayerFilter is a conjunction of clauses; a zero clause always passes.
type PrayerFilter struct {
	Owner_Only   bool
	Current_User string
	Category     string
	Search       string
}
