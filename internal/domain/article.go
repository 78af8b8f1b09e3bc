package domain

// Article is a news item as returned by a search provider. Optional fields
// are pointers so an absent value stays distinguishable from an empty one.
type Article struct {
	Title       *string
	Description *string
	Content     *string
	PublishedAt string
	URL         string
	SourceName  string
}

// TitleText returns the title or an empty string when absent.
func (a Article) TitleText() string { return deref(a.Title) }

// DescriptionText returns the description or an empty string when absent.
func (a Article) DescriptionText() string { return deref(a.Description) }

// ContentText returns the content or an empty string when absent.
func (a Article) ContentText() string { return deref(a.Content) }

// StringPtr is a small helper for building articles in adapters and tests.
func StringPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
