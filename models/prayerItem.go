package models

// Moderation status values
const (
	ModerationStatusPending  = "pending"
	ModerationStatusApproved = "approved"
)

// DateLayout is the calendar date format used for submitted and comment dates.
const DateLayout = "2006-01-02"

type PrayerItem struct {
	Prayer_Item_ID    int      `json:"prayerId"`
	Title             *string  `json:"title,omitempty"`
	Category          []string `json:"category"`
	Description       string   `json:"description"`
	Author_Name       string   `json:"authorName"`
	Pray_Count        int      `json:"prayCount"`
	Submitted_Date    string   `json:"date"`
	Images            []string `json:"images"`
	Moderation_Status string   `json:"status"`
	Comment_Count     int      `json:"commentCount"`
}

type PrayerItemCreate struct {
	Title       *string  `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Author_Name string   `json:"-"`
	Images      []string `json:"-"`
}

// PrayerItemSeed is a fixture item restored verbatim into an empty registry.
type PrayerItemSeed struct {
	Prayer_Item_ID    int           `yaml:"id"`
	Title             *string       `yaml:"title"`
	Category          []string      `yaml:"category"`
	Description       string        `yaml:"description"`
	Author_Name       string        `yaml:"authorName"`
	Pray_Count        int           `yaml:"prayCount"`
	Submitted_Date    string        `yaml:"date"`
	Images            []string      `yaml:"images"`
	Moderation_Status string        `yaml:"status"`
	Comments          []CommentSeed `yaml:"comments"`
}

// IsOwnedBy reports whether user submitted the item.
func (p PrayerItem) IsOwnedBy(user string) bool {
	return user != "" && p.Author_Name == user
}

// CanShare reports whether the share action is offered to user: only the author
// may share, and only once the item has been approved.
func (p PrayerItem) CanShare(user string) bool {
	return p.IsOwnedBy(user) && p.Moderation_Status == ModerationStatusApproved
}

// HasCategory reports category membership.
func (p PrayerItem) HasCategory(category string) bool {
	for _, c := range p.Category {
		if c == category {
			return true
		}
	}
	return false
}
