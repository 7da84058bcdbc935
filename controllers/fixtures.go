package controllers

import (
	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
)

// Test fixture data for use in tests

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// MockImage returns a small PNG attachment
func MockImage(name string) media.File {
	return media.File{Name: name, MediaType: "image/png", Data: pngBytes}
}

// MockUntypedImage returns a PNG sent without a declared content type
func MockUntypedImage(name string) media.File {
	return media.File{Name: name, MediaType: "application/octet-stream", Data: pngBytes}
}

// MockAudio returns a short recorded voice note
func MockAudio() media.File {
	return media.File{Name: "voice.webm", MediaType: "audio/webm", Data: []byte("opus-frames")}
}

// MockPrayerCreate creates a sample prayer submission for testing
func MockPrayerCreate(author string) models.PrayerItemCreate {
	return models.PrayerItemCreate{
		Description: "為媽媽手術後的恢復禱告，求主賜下力量與平安。",
		Categories:  []string{"病人醫治", "家庭關係"},
		Author_Name: author,
	}
}

// MockTextComment creates a sample text comment for testing
func MockTextComment(author string) models.CommentCreate {
	return models.CommentCreate{Author_Name: author, Content: "為您禱告，願主賜下醫治與力量。"}
}
