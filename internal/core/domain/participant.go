package domain

import "net/url"

// PlaceholderPhotoURL replaces any participant photo that is missing or not an
// absolute http(s) URL.
const PlaceholderPhotoURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

type Participant struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Photo     string `json:"photo"`
	VoteCount int64  `json:"vote_count"`
}

type CategoryTotal struct {
	Category   string `json:"category"`
	TotalVotes int64  `json:"total_votes"`
}

// NormalizePhoto returns photo unchanged when it is a well-formed absolute
// http or https URL, and the placeholder otherwise.
func NormalizePhoto(photo string) string {
	if photo == "" {
		return PlaceholderPhotoURL
	}
	u, err := url.Parse(photo)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return PlaceholderPhotoURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return PlaceholderPhotoURL
	}
	return photo
}
