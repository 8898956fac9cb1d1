package twelvelabs

import (
	"net/url"
	"strconv"
)

// SearchOption selects an evidence source for a search.
type SearchOption string

// Known search options.
const (
	SearchOptionVisual       SearchOption = "visual"
	SearchOptionConversation SearchOption = "conversation"
	SearchOptionTextInVideo  SearchOption = "text_in_video"
	SearchOptionLogo         SearchOption = "logo"
)

// Known reports whether the option is part of the vocabulary this client was built against.
func (o SearchOption) Known() bool {
	return EngineOption(o).Known()
}

// GroupBy controls how clips are grouped in a result page.
type GroupBy string

const (
	GroupByClip  GroupBy = "clip"
	GroupByVideo GroupBy = "video"
)

// Threshold filters clips by confidence.
type Threshold string

const (
	ThresholdHigh   Threshold = "high"
	ThresholdMedium Threshold = "medium"
	ThresholdLow    Threshold = "low"
	ThresholdNone   Threshold = "none"
)

// Operator combines several search options.
type Operator string

const (
	OperatorOr  Operator = "or"
	OperatorAnd Operator = "and"
)

// ConversationOption selects how conversation evidence is matched.
type ConversationOption string

const (
	ConversationSemantic   ConversationOption = "semantic"
	ConversationExactMatch ConversationOption = "exact_match"
)

// SortOption orders a result page.
type SortOption string

const (
	SortByScore     SortOption = "score"
	SortByClipCount SortOption = "clip_count"
)

// Confidence is the qualitative tier the platform assigns a clip.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Known reports whether the tier is part of the vocabulary this client was built against.
func (c Confidence) Known() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceNone:
		return true
	default:
		return false
	}
}

// SearchRequest is an immutable search query. Either Query or Filter (or both) is set.
type SearchRequest struct {
	IndexID               string             `json:"index_id"                          yaml:"index_id"`
	Query                 string             `json:"query,omitempty"                   yaml:"query,omitempty"`
	Filter                map[string]any     `json:"filter,omitempty"                  yaml:"filter,omitempty"`
	Options               []SearchOption     `json:"search_options"                    yaml:"search_options"`
	GroupBy               GroupBy            `json:"group_by,omitempty"                yaml:"group_by,omitempty"`
	Threshold             Threshold          `json:"threshold,omitempty"               yaml:"threshold,omitempty"`
	Operator              Operator           `json:"operator,omitempty"                yaml:"operator,omitempty"`
	ConversationOption    ConversationOption `json:"conversation_option,omitempty"     yaml:"conversation_option,omitempty"`
	PageLimit             int                `json:"page_limit,omitempty"              yaml:"page_limit,omitempty"`
	SortOption            SortOption         `json:"sort_option,omitempty"             yaml:"sort_option,omitempty"`
	AdjustConfidenceLevel *float64           `json:"adjust_confidence_level,omitempty" yaml:"adjust_confidence_level,omitempty"`
}

// ModuleConfidence is the per-option confidence of a clip.
type ModuleConfidence map[SearchOption]Confidence

// ClipMetadata names the evidence that produced a clip.
type ClipMetadata struct {
	Type string `json:"type"           yaml:"type"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Clip is a scored, time-bounded match within a video.
type Clip struct {
	VideoID          string           `json:"video_id"                    yaml:"video_id"`
	Score            float64          `json:"score"                       yaml:"score"`
	Start            float64          `json:"start"                       yaml:"start"`
	End              float64          `json:"end"                         yaml:"end"`
	Confidence       Confidence       `json:"confidence"                  yaml:"confidence"`
	ThumbnailURL     string           `json:"thumbnail_url,omitempty"     yaml:"thumbnail_url,omitempty"`
	Metadata         []ClipMetadata   `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
	ModuleConfidence ModuleConfidence `json:"module_confidence,omitempty" yaml:"module_confidence,omitempty"`
	Clips            []Clip           `json:"clips,omitempty"             yaml:"clips,omitempty"`
}

// SearchPageInfo carries the continuation token of a result page.
type SearchPageInfo struct {
	LimitPerPage  int    `json:"limit_per_page"            yaml:"limit_per_page"`
	TotalResults  int    `json:"total_results"             yaml:"total_results"`
	PageExpiredAt string `json:"page_expired_at,omitempty" yaml:"page_expired_at,omitempty"`
	NextPageToken string `json:"next_page_token,omitempty" yaml:"next_page_token,omitempty"`
	PrevPageToken string `json:"prev_page_token,omitempty" yaml:"prev_page_token,omitempty"`
}

// SearchPool describes the videos a search ran against.
type SearchPool struct {
	IndexID       string  `json:"index_id"       yaml:"index_id"`
	TotalCount    int     `json:"total_count"    yaml:"total_count"`
	TotalDuration float64 `json:"total_duration" yaml:"total_duration"`
}

// SearchResultPage is one page of clips plus an optional continuation token.
type SearchResultPage struct {
	Pool     *SearchPool    `json:"search_pool,omitempty" yaml:"search_pool,omitempty"`
	Clips    []Clip         `json:"data"                  yaml:"data"`
	PageInfo SearchPageInfo `json:"page_info"             yaml:"page_info"`
}

// NextPageToken returns the continuation token, empty at end of stream.
func (p *SearchResultPage) NextPageToken() string {
	return p.PageInfo.NextPageToken
}

// ListParams selects a page of a numbered list endpoint.
type ListParams struct {
	Page       int
	PageLimit  int
	SortBy     string
	SortOption string
	Filters    map[string]string
}

// NewListParams creates list params with the default page size.
func NewListParams() *ListParams {
	return &ListParams{Filters: map[string]string{}}
}

// WithPage selects a 1-based page.
func (p *ListParams) WithPage(page int) *ListParams {
	p.Page = page

	return p
}

// WithPageLimit sets the page size.
func (p *ListParams) WithPageLimit(limit int) *ListParams {
	p.PageLimit = limit

	return p
}

// WithFilter adds a filter such as index_name or status.
func (p *ListParams) WithFilter(key, value string) *ListParams {
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}

	p.Filters[key] = value

	return p
}

// ToValues encodes the params as query parameters.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.Page > 0 {
		values["page"] = []string{strconv.Itoa(p.Page)}
	}

	if p.PageLimit > 0 {
		values["page_limit"] = []string{strconv.Itoa(p.PageLimit)}
	}

	if p.SortBy != "" {
		values["sort_by"] = []string{p.SortBy}
	}

	if p.SortOption != "" {
		values["sort_option"] = []string{p.SortOption}
	}

	for key, value := range p.Filters {
		values[key] = []string{value}
	}

	return values
}
