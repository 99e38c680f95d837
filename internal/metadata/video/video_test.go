package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/linkstash/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url       string
		wantType  domain.VideoType
		wantVideo bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", domain.VideoTypeYouTube, true},
		{"youtu.be/dQw4w9WgXcQ", domain.VideoTypeYouTube, true},
		{"HTTPS://M.YOUTUBE.COM/shorts/abc", domain.VideoTypeYouTube, true},
		{"https://www.instagram.com/reel/Cxyz123/", domain.VideoTypeInstagram, true},
		{"https://www.instagram.com/p/Cxyz123/", "", false},
		{"https://example.com/article", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotType, gotVideo := Classify(tt.url)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantVideo, gotVideo)
		})
	}
}

func TestYouTubeID(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=share":            "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://youtube.com/shorts/aBcD123":               "aBcD123",
	}
	for url, want := range tests {
		got, ok := YouTubeID(url)
		assert.True(t, ok, url)
		assert.Equal(t, want, got, url)
	}

	_, ok := YouTubeID("https://www.youtube.com/channel/UC123")
	assert.False(t, ok)
}

func TestInstagramReelID(t *testing.T) {
	got, ok := InstagramReelID("https://www.instagram.com/reel/Cxyz123/?igsh=abc")
	assert.True(t, ok)
	assert.Equal(t, "Cxyz123", got)

	_, ok = InstagramReelID("https://www.instagram.com/p/Cxyz123/")
	assert.False(t, ok)
}

func TestID(t *testing.T) {
	got, ok := ID("https://youtu.be/abc", domain.VideoTypeYouTube)
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	_, ok = ID("https://youtu.be/abc", "")
	assert.False(t, ok)
}
