// internal/prompt/detect/detect.go
package detect

import (
	"regexp"
	"strings"

	"promptcraft/internal/prompt/stok"
)

// Stakeholder patterns are tried in order; the first match wins.
var stakeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`send to (\w+)`),
	regexp.MustCompile(`for my (\w+)`),
	regexp.MustCompile(`present to (\w+)`),
	regexp.MustCompile(`share with (\w+)`),
	regexp.MustCompile(`to my (\w+)`),
	regexp.MustCompile(`for the (\w+)`),
}

var hasDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`from this data`),
	regexp.MustCompile(`with this data`),
	regexp.MustCompile(`using this data`),
	regexp.MustCompile(`based on this data`),
	regexp.MustCompile(`here('s| is) the data`),
	regexp.MustCompile(`attached data`),
	regexp.MustCompile(`the following data`),
	regexp.MustCompile(`this dataset`),
}

var needsDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`what data`),
	regexp.MustCompile(`which metrics`),
	regexp.MustCompile(`how to collect`),
	regexp.MustCompile(`what should i track`),
}

// Detect extracts the auxiliary signals of a raw query.
func Detect(query string) stok.QueryContext {
	q := strings.ToLower(query)
	hasData, needsData := dataContext(q)
	return stok.QueryContext{
		HasData:     hasData,
		NeedsData:   needsData,
		Stakeholder: stakeholder(q),
		QueryLength: len(strings.Fields(query)),
	}
}

// Stakeholder returns the recipient named in query, or "" if none.
func Stakeholder(query string) string {
	return stakeholder(strings.ToLower(query))
}

// DataContext reports whether the query brings data and whether it asks
// what data to gather. The two are independent.
func DataContext(query string) (hasData, needsData bool) {
	return dataContext(strings.ToLower(query))
}

func stakeholder(q string) string {
	for _, re := range stakeholderPatterns {
		if m := re.FindStringSubmatch(q); m != nil {
			return m[1]
		}
	}
	return ""
}

func dataContext(q string) (bool, bool) {
	return matchAny(q, hasDataPatterns), matchAny(q, needsDataPatterns)
}

func matchAny(q string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}
