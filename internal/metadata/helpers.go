package metadata

import "github.com/iliyamo/cinelux-booking/internal/model"

// placeholderImage is the local asset shown for movies without artwork.
const placeholderImage = "/placeholder-movie.jpg"

// ImageURL resolves a provider image path against the image CDN at the
// given size ("w92" through "original").  A nil or empty path yields
// the local placeholder.
func (c *Client) ImageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return placeholderImage
	}
	if size == "" {
		size = "w500"
	}
	return c.imageBase + "/" + size + *path
}

// Trailer picks the most watchable YouTube clip: an official trailer
// first, then any trailer, then a teaser, then whatever YouTube clip
// exists.  Returns nil when no clip is hosted on YouTube.
func Trailer(videos []model.MetaVideo) *model.MetaVideo {
	pick := func(match func(model.MetaVideo) bool) *model.MetaVideo {
		for i := range videos {
			if videos[i].Site == "YouTube" && match(videos[i]) {
				return &videos[i]
			}
		}
		return nil
	}
	if v := pick(func(v model.MetaVideo) bool { return v.Type == "Trailer" && v.Official }); v != nil {
		return v
	}
	if v := pick(func(v model.MetaVideo) bool { return v.Type == "Trailer" }); v != nil {
		return v
	}
	if v := pick(func(v model.MetaVideo) bool { return v.Type == "Teaser" }); v != nil {
		return v
	}
	return pick(func(model.MetaVideo) bool { return true })
}
