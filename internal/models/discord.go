package models

// DiscordMember is a roster row mirrored from the Discord bot into
// participants_discord. Field names vary between bot revisions (phone vs
// phoneNumber, position vs part, school vs schoolName), so the repository
// reads raw document data and fills the first populated variant.
type DiscordMember struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Position   string
	School     string
	TeamNumber int
	Status     string
	Memo       string
}
