package posts

// FrontMatter is the metadata block of a post file.
type FrontMatter struct {
	Title   string
	Author  string
	Preview string
	Date    string
	Icon    string
	Emoji   string
	// Raw keeps every decoded key, including the ones mapped above.
	Raw map[string]any
}

// Record is a post as discovered on disk, before classification.
type Record struct {
	FrontMatter FrontMatter
	Content     string
	FilePath    string
}

// Post is the listing projection of a Record.
type Post struct {
	Title   string
	Author  string
	Slug    string
	Preview string
	// Timestamp is the post date in epoch milliseconds; it is only meaningful
	// when Dated is true.
	Timestamp int64
	Dated     bool
	Draft     bool
	Date      string
	Content   string
	FilePath  string
	Icon      string
	Emoji     string
}
