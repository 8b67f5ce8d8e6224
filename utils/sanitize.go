package utils

import "github.com/microcosm-cc/bluemonday"

var ugcPolicy = bluemonday.UGCPolicy()

// Sanitize strips markup the UGC policy disallows. Post bodies arrive from a
// rich-text editor and comments may paste HTML; both pass through here before
// they are stored, which is what lets the templates render them raw.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}
