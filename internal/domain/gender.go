package domain

import "strings"

// Gender classifies a category's intended audience. The database keeps it as
// a nullable text column where NULL, the empty string and "Unisex" all mean
// the same thing; ParseGender and GenderFromDB collapse them into
// GenderUnisex so the rest of the code only ever sees the three canonical
// values.
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// ParseGender maps a query parameter to a canonical Gender. Matching is
// case-insensitive. The empty string is not a valid filter value.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "men", "male":
		return GenderMen, true
	case "women", "female":
		return GenderWomen, true
	case "unisex":
		return GenderUnisex, true
	}
	return "", false
}

// GenderFromDB maps a stored category gender to its canonical value. The
// column predates the Unisex convention, so NULL (passed as nil) and "" are
// treated as unisex.
func GenderFromDB(s *string) Gender {
	if s == nil {
		return GenderUnisex
	}
	g, ok := ParseGender(*s)
	if !ok {
		return GenderUnisex
	}
	return g
}

func (g Gender) String() string { return string(g) }
