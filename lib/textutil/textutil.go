package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

var nameCleaner = strings.NewReplacer(".", "", "'", "")

// CleanPersonName strips the punctuation that commonly shows up inside
// display names ("Joe Z. Dirt", "Mary O'Brien") so the remaining tokens
// can be recombined into usernames.
func CleanPersonName(name string) string {
	return nameCleaner.Replace(name)
}

// SplitPersonName cleans a display name and splits it on single spaces.
// "Joe Z. Dirt" -> ["Joe" "Z" "Dirt"]
func SplitPersonName(name string) []string {
	return strings.Split(CleanPersonName(name), " ")
}
