package models

type Comment struct {
	Comment_ID  int       `json:"commentId"`
	Author_Name string    `json:"authorName"`
	Content     string    `json:"content"`
	Date        string    `json:"date"`
	Pray_Count  int       `json:"prayCount"`
	Replies     []Comment `json:"replies"`
	Images      []string  `json:"images"`
	Audio       *string   `json:"audio"`
}

// CommentCreate carries an already validated comment or reply submission.
type CommentCreate struct {
	Author_Name string
	Content     string
	Images      []string
	Audio       *string
}

// HasMedia reports whether at least one image or an audio clip is attached.
func (c CommentCreate) HasMedia() bool {
	return len(c.Images) > 0 || c.Audio != nil
}

type CommentSeed struct {
	Author_Name string        `yaml:"authorName"`
	Content     string        `yaml:"content"`
	Date        string        `yaml:"date"`
	Pray_Count  int           `yaml:"prayCount"`
	Images      []string      `yaml:"images"`
	Replies     []CommentSeed `yaml:"replies"`
}
