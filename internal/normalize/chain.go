package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
)

// chain is an ordered list of JSON paths where a single canonical field may
// live. The first path holding a value of the accepted kind wins; values of
// the wrong kind are skipped as if absent.
type chain []string

func (c chain) resolve(doc gjson.Result, accept func(gjson.Result) bool) (gjson.Result, bool) {
	for _, path := range c {
		v := lookup(doc, path)
		if v.Exists() && accept(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// lookup resolves a dotted path of object keys. When a key appears more
// than once in an object the last occurrence wins, as it does for the
// service's JavaScript clients.
func lookup(doc gjson.Result, path string) gjson.Result {
	cur := doc
	for _, key := range strings.Split(path, ".") {
		if !cur.IsObject() {
			return gjson.Result{}
		}
		var found gjson.Result
		cur.ForEach(func(k, v gjson.Result) bool {
			if k.Str == key {
				found = v
			}
			return true
		})
		if !found.Exists() {
			return gjson.Result{}
		}
		cur = found
	}
	return cur
}

func (c chain) boolean(doc gjson.Result) (bool, bool) {
	v, ok := c.resolve(doc, isBool)
	return v.Bool(), ok
}

func (c chain) number(doc gjson.Result) (float64, bool) {
	v, ok := c.resolve(doc, isNumber)
	return v.Float(), ok
}

func (c chain) text(doc gjson.Result) (string, bool) {
	v, ok := c.resolve(doc, isText)
	return strings.TrimSpace(v.Str), ok
}

// textOrList accepts a non-empty string or a list with at least one
// non-empty string, joining list items with ", ".
func (c chain) textOrList(doc gjson.Result) (string, bool) {
	v, ok := c.resolve(doc, func(v gjson.Result) bool { return isText(v) || isTextList(v) })
	if !ok {
		return "", false
	}
	if v.IsArray() {
		return strings.Join(texts(v), ", "), true
	}
	return strings.TrimSpace(v.Str), true
}

func isBool(v gjson.Result) bool {
	return v.Type == gjson.True || v.Type == gjson.False
}

func isNumber(v gjson.Result) bool {
	return v.Type == gjson.Number
}

func isText(v gjson.Result) bool {
	return v.Type == gjson.String && strings.TrimSpace(v.Str) != ""
}

func isTextList(v gjson.Result) bool {
	return v.IsArray() && len(texts(v)) > 0
}

// texts returns the non-empty string items of a list, in order.
func texts(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	for _, item := range v.Array() {
		if isText(item) {
			out = append(out, strings.TrimSpace(item.Str))
		}
	}
	return out
}
