// Package envelope locates the evaluation JSON inside a transport envelope.
//
// The evaluation service either returns the evaluation object directly or
// wraps it as {"output":[{"content":[{"text":"<json>"}]}]}. Unwrapping is
// best-effort: any mismatch returns the input unchanged.
package envelope

import (
	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

// Form describes how an evaluation was delivered.
type Form string

const (
	FormDirect  Form = "direct"
	FormWrapped Form = "wrapped"
)

// Unwrapper extracts the embedded evaluation. The zero value is strict:
// embedded text that is not valid JSON aborts unwrapping.
type Unwrapper struct {
	// Repair runs invalid embedded text through a JSON repair pass and
	// accepts the result only if it is a JSON object.
	Repair bool
}

// Unwrap extracts the evaluation using strict parsing.
func Unwrap(raw []byte) []byte {
	return Unwrapper{}.Unwrap(raw)
}

// Unwrap returns the embedded evaluation JSON, or raw unchanged when the
// envelope does not have the wrapped shape.
func (u Unwrapper) Unwrap(raw []byte) []byte {
	out, _ := u.unwrap(raw)
	return out
}

// Extract is Unwrap that also reports which form the payload arrived in.
func (u Unwrapper) Extract(raw []byte) ([]byte, Form) {
	return u.unwrap(raw)
}

func (u Unwrapper) unwrap(raw []byte) ([]byte, Form) {
	text, ok := embeddedText(raw)
	if !ok {
		return raw, FormDirect
	}
	if gjson.Valid(text) {
		return []byte(text), FormWrapped
	}
	if !u.Repair {
		return raw, FormDirect
	}
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil || !gjson.Valid(repaired) || !gjson.Parse(repaired).IsObject() {
		return raw, FormDirect
	}
	return []byte(repaired), FormWrapped
}

// embeddedText walks output[0].content[0].text. Only the first element of
// each list is inspected.
func embeddedText(raw []byte) (string, bool) {
	if !gjson.ValidBytes(raw) {
		return "", false
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return "", false
	}
	item, ok := first(doc.Get("output"))
	if !ok || !item.IsObject() {
		return "", false
	}
	entry, ok := first(item.Get("content"))
	if !ok || !entry.IsObject() {
		return "", false
	}
	text := entry.Get("text")
	if text.Type != gjson.String || text.Str == "" {
		return "", false
	}
	return text.Str, true
}

func first(list gjson.Result) (gjson.Result, bool) {
	if !list.IsArray() {
		return gjson.Result{}, false
	}
	items := list.Array()
	if len(items) == 0 {
		return gjson.Result{}, false
	}
	return items[0], true
}
