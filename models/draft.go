package models

// Draft kinds
const (
	DraftKindPrayer  = "prayer"
	DraftKindComment = "comment"
	DraftKindReply   = "reply"
)

type Draft struct {
	Draft_ID          string     `json:"draftId"`
	Kind              string     `json:"kind"`
	Author_Name       string     `json:"authorName"`
	Prayer_Item_ID    int        `json:"prayerId,omitempty"`
	Parent_Comment_ID int        `json:"parentCommentId,omitempty"`
	Images            []MediaRef `json:"images"`
	Audio             *MediaRef  `json:"audio"`
	Recording         bool       `json:"recording"`
}

type DraftCreate struct {
	Kind              string `json:"kind" binding:"required"`
	Prayer_Item_ID    int    `json:"prayerId"`
	Parent_Comment_ID int    `json:"parentCommentId"`
}

// DraftCommit holds the text fields supplied when a draft is committed. Content
// applies to comment and reply drafts, the rest to prayer drafts.
type DraftCommit struct {
	Content     string   `json:"content"`
	Title       *string  `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// DraftResult is the entity created by committing a draft; exactly one field is set.
type DraftResult struct {
	Prayer  *PrayerItem `json:"prayer,omitempty"`
	Comment *Comment    `json:"comment,omitempty"`
}
