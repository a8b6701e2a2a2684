package internal

import (
	"encoding/json"
	"time"
)

// ChatRecord is the root of one workspace's chat history as stored under
// ChatDataKey.
type ChatRecord struct {
	Tabs []Tab `json:"tabs"`
}

// Tab is one chat tab holding an ordered sequence of message bubbles
type Tab struct {
	Timestamp int64    `json:"timestamp"`
	Bubbles   []Bubble `json:"bubbles"`
}

// Bubble is one message unit within a tab. Its content is an ordered
// sequence of parts rather than a set of optional same-level fields, so
// mixed text/code/image messages keep a defined rendering order.
type Bubble struct {
	Kind      string // "user" or "ai"
	ModelType string
	Parts     []BubblePart
}

// BubblePart is one piece of bubble content
type BubblePart interface {
	isBubblePart()
}

// TextPart is a plain text segment
type TextPart struct {
	Text string
}

// CodePart is a code block with an optional language hint
type CodePart struct {
	Content  string
	Language string
}

// ImagePart is an embedded image payload awaiting extraction
type ImagePart struct {
	Data []byte
}

func (TextPart) isBubblePart()  {}
func (CodePart) isBubblePart()  {}
func (ImagePart) isBubblePart() {}

// bubbleJSON mirrors the stored bubble shape
type bubbleJSON struct {
	Type       string `json:"type"`
	ModelType  string `json:"modelType"`
	Text       string `json:"text"`
	CodeBlocks []struct {
		Language string `json:"language"`
		Content  string `json:"content"`
	} `json:"codeBlocks"`
	Image *struct {
		Data []byte `json:"data"`
	} `json:"image"`
}

// UnmarshalJSON builds the part sequence from the stored optional fields.
// Absent fields contribute no part; they are not defaulted.
func (b *Bubble) UnmarshalJSON(data []byte) error {
	var raw bubbleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Kind = raw.Type
	b.ModelType = raw.ModelType
	b.Parts = nil

	if raw.Text != "" {
		b.Parts = append(b.Parts, TextPart{Text: raw.Text})
	}
	for _, cb := range raw.CodeBlocks {
		b.Parts = append(b.Parts, CodePart{Content: cb.Content, Language: cb.Language})
	}
	if raw.Image != nil && len(raw.Image.Data) > 0 {
		b.Parts = append(b.Parts, ImagePart{Data: raw.Image.Data})
	}

	return nil
}

// Image returns the bubble's image part, if any
func (b *Bubble) Image() (ImagePart, bool) {
	for _, part := range b.Parts {
		if img, ok := part.(ImagePart); ok {
			return img, true
		}
	}
	return ImagePart{}, false
}

// IsEmpty reports whether the bubble contributes no renderable content
func (b *Bubble) IsEmpty() bool {
	return len(b.Parts) == 0
}

// GetTimestamp returns a time.Time from the tab's last-activity timestamp
func (t *Tab) GetTimestamp() time.Time {
	return time.Unix(0, t.Timestamp*int64(time.Millisecond))
}

// ParseChatRecord deserializes the raw chat history JSON into a ChatRecord.
// Malformed JSON yields a ParseError carrying the decode diagnostic; JSON
// that decodes but lacks a "tabs" array yields a SchemaError.
func ParseChatRecord(raw string) (*ChatRecord, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Source: "chatdata", Err: err}
	}

	tabsRaw, ok := doc["tabs"]
	if !ok {
		return nil, &SchemaError{Field: "tabs", Reason: "is missing"}
	}

	var tabs []Tab
	if err := json.Unmarshal(tabsRaw, &tabs); err != nil {
		return nil, &SchemaError{Field: "tabs", Reason: "has unexpected type: " + err.Error()}
	}

	return &ChatRecord{Tabs: tabs}, nil
}
