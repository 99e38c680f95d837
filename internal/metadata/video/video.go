// Package video recognizes links to supported video platforms.
package video

import (
	"regexp"

	"github.com/listenupapp/linkstash/internal/domain"
)

var (
	youtubeHostRe = regexp.MustCompile(`(?i)youtube\.com|youtu\.be`)
	instagramRe   = regexp.MustCompile(`(?i)instagram\.com/reel`)

	youtubeIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/embed/([^&\n?#/]+)`),
		regexp.MustCompile(`youtube\.com/shorts/([^&\n?#/]+)`),
	}
	instagramReelIDRe = regexp.MustCompile(`instagram\.com/reel/([^/?#&]+)`)
)

// Classify reports whether rawURL points at a supported video platform.
// Matching is a case-insensitive substring test on the raw string, so it
// works for scheme-less and otherwise unparsable input.
func Classify(rawURL string) (domain.VideoType, bool) {
	switch {
	case youtubeHostRe.MatchString(rawURL):
		return domain.VideoTypeYouTube, true
	case instagramRe.MatchString(rawURL):
		return domain.VideoTypeInstagram, true
	default:
		return "", false
	}
}

// YouTubeID extracts the video id from watch, youtu.be, embed and shorts URLs.
func YouTubeID(rawURL string) (string, bool) {
	for _, re := range youtubeIDRes {
		if m := re.FindStringSubmatch(rawURL); m != nil && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// InstagramReelID extracts the reel id from an instagram.com/reel/ URL.
func InstagramReelID(rawURL string) (string, bool) {
	if m := instagramReelIDRe.FindStringSubmatch(rawURL); m != nil && m[1] != "" {
		return m[1], true
	}
	return "", false
}

// ID extracts the platform-specific id for a URL of the given type.
func ID(rawURL string, videoType domain.VideoType) (string, bool) {
	switch videoType {
	case domain.VideoTypeYouTube:
		return YouTubeID(rawURL)
	case domain.VideoTypeInstagram:
		return InstagramReelID(rawURL)
	default:
		return "", false
	}
}
