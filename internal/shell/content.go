package shell

import "waitingtodo/internal/config"

// SourceKind tells the window how to interpret a content location
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceURL
)

func (k SourceKind) String() string {
	if k == SourceURL {
		return "url"
	}
	return "file"
}

// ContentSource is what the window loads
type ContentSource struct {
	Kind     SourceKind
	Location string
}

// SelectContent picks the development server in development mode and the packaged entry file otherwise
func SelectContent(mode config.ProcessMode, devServerURL, entryFile string) ContentSource {
	if mode == config.ModeDevelopment {
		return ContentSource{Kind: SourceURL, Location: devServerURL}
	}
	return ContentSource{Kind: SourceFile, Location: entryFile}
}
