package models

// Media rejection reasons
const (
	MediaReasonInvalidFormat = "invalid format"
	MediaReasonTooLarge      = "too large"
	MediaReasonLimitReached  = "limit reached"
)

// MediaRef describes a payload accepted into the media library.
type MediaRef struct {
	Ref        string `json:"ref"`
	Media_Type string `json:"mediaType"`
	Size       int64  `json:"size"`
	File_Name  string `json:"fileName"`
	Digest     string `json:"digest"`
}

type MediaRejection struct {
	File_Name string `json:"fileName"`
	Reason    string `json:"reason"`
}
