package contract

import "encoding/json"

// TextOrList absorbs backend fields that arrive as either a single string or
// a list of strings. The shape is resolved once here, at decode time; render
// sites only ever see Lines. Marshalling re-emits the shape that was received
// so a strategy sent back for persistence round-trips unchanged.
type TextOrList struct {
	text   string
	list   []string
	isText bool
}

// TextOf builds a single-string variant.
func TextOf(s string) TextOrList {
	return TextOrList{text: s, isText: true}
}

// ListOf builds a list variant.
func ListOf(lines ...string) TextOrList {
	return TextOrList{list: lines}
}

// Lines returns the normalized []string view. A text variant becomes a
// one-element slice; an empty value returns nil.
func (t TextOrList) Lines() []string {
	if t.isText {
		if t.text == "" {
			return nil
		}
		return []string{t.text}
	}
	if len(t.list) == 0 {
		return nil
	}
	out := make([]string, len(t.list))
	copy(out, t.list)
	return out
}

// IsEmpty reports whether the value holds no content.
func (t TextOrList) IsEmpty() bool {
	return len(t.Lines()) == 0
}

func (t *TextOrList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TextOrList{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TextOrList{text: s, isText: true}
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*t = TextOrList{list: lines}
	return nil
}

func (t TextOrList) MarshalJSON() ([]byte, error) {
	if t.isText {
		return json.Marshal(t.text)
	}
	if t.list == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t.list)
}
