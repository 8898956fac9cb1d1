package twelvelabs

// SummaryType selects the shape of a summarize response.
type SummaryType string

const (
	SummaryTypeSummary   SummaryType = "summary"
	SummaryTypeChapter   SummaryType = "chapter"
	SummaryTypeHighlight SummaryType = "highlight"
)

// Known reports whether the type is part of the vocabulary this client was built against.
func (t SummaryType) Known() bool {
	return t == SummaryTypeSummary || t == SummaryTypeChapter || t == SummaryTypeHighlight
}

// GistType selects a field of a gist response.
type GistType string

const (
	GistTypeTitle   GistType = "title"
	GistTypeTopic   GistType = "topic"
	GistTypeHashtag GistType = "hashtag"
)

// Known reports whether the type is part of the vocabulary this client was built against.
func (t GistType) Known() bool {
	return t == GistTypeTitle || t == GistTypeTopic || t == GistTypeHashtag
}

// GenerateRequest asks for open-ended text about a video.
type GenerateRequest struct {
	VideoID     string   `json:"video_id"              yaml:"video_id"`
	Prompt      string   `json:"prompt"                yaml:"prompt"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Stream      bool     `json:"stream"                yaml:"stream"`
}

// GenerateResult is the generated text.
type GenerateResult struct {
	ID   string `json:"id"   yaml:"id"`
	Data string `json:"data" yaml:"data"`
}

// SummarizeRequest asks for a summary, chapters or highlights.
type SummarizeRequest struct {
	VideoID     string      `json:"video_id"              yaml:"video_id"`
	Type        SummaryType `json:"type"                  yaml:"type"`
	Prompt      string      `json:"prompt,omitempty"      yaml:"prompt,omitempty"`
	Temperature *float64    `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// Chapter is a titled segment of a video.
type Chapter struct {
	Number  int     `json:"chapter_number"  yaml:"chapter_number"`
	Start   float64 `json:"start"           yaml:"start"`
	End     float64 `json:"end"             yaml:"end"`
	Title   string  `json:"chapter_title"   yaml:"chapter_title"`
	Summary string  `json:"chapter_summary" yaml:"chapter_summary"`
}

// Highlight is a notable moment in a video.
type Highlight struct {
	Start   float64 `json:"start"             yaml:"start"`
	End     float64 `json:"end"               yaml:"end"`
	Text    string  `json:"highlight"         yaml:"highlight"`
	Summary string  `json:"highlight_summary" yaml:"highlight_summary"`
}

// SummarizeResult holds whichever field matches the requested type.
type SummarizeResult struct {
	ID         string      `json:"id"                   yaml:"id"`
	Summary    string      `json:"summary,omitempty"    yaml:"summary,omitempty"`
	Chapters   []Chapter   `json:"chapters,omitempty"   yaml:"chapters,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// GistRequest asks for structured title, topics and hashtags.
type GistRequest struct {
	VideoID string     `json:"video_id" yaml:"video_id"`
	Types   []GistType `json:"types"    yaml:"types"`
}

// GistResult is the structured gist.
type GistResult struct {
	ID       string   `json:"id"                 yaml:"id"`
	Title    string   `json:"title,omitempty"    yaml:"title,omitempty"`
	Topics   []string `json:"topics,omitempty"   yaml:"topics,omitempty"`
	Hashtags []string `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
}
