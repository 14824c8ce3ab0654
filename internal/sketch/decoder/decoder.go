// Package decoder turns pde://sketch/base64/ URLs into sketches.
package decoder

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

const (
	payloadMarker = "base64/"

	// ParamData carries asset pairs, ParamSources auxiliary source pairs.
	ParamData    = "data"
	ParamSources = "pde"
)

var (
	errDecodedUTF8 = errors.New("decoded bytes are not valid utf-8")
	errLineBreak   = errors.New("illegal line break in base64 data")
)

// Pair is one name:value entry from a data= or pde= parameter. Value is still
// base64 encoded.
type Pair struct {
	Name  string
	Value string
}

// Decode parses raw into a Sketch. The outer payload becomes the primary
// source; data= pairs become assets and pde= pairs auxiliary sources, both
// decoded from base64 to text. Auxiliary sources are not merged here.
func Decode(raw string) (*sketch.Sketch, error) {
	idx := strings.Index(raw, payloadMarker)
	if !sketch.IsURL(raw) || idx < 0 {
		return nil, sketch.Errorf(sketch.KindInvalidInput, "decode url", "", "missing %q prefix", sketch.URLPrefix)
	}

	payload, query, hasQuery := strings.Cut(raw[idx+len(payloadMarker):], "?")

	primary, err := DecodeText(payload)
	if err != nil {
		return nil, wrapPath(err, "payload")
	}

	result := sketch.New()
	result.SetPrimary(primary)
	if !hasQuery {
		return result, nil
	}

	for _, param := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(param, "=")
		if !ok {
			continue
		}

		var target *sketch.Entries
		switch key {
		case ParamData:
			target = &result.Assets
		case ParamSources:
			target = &result.Sources
		default:
			continue
		}

		for _, pair := range SplitPairs(value) {
			text, err := DecodeText(pair.Value)
			if err != nil {
				return nil, wrapPath(err, key+"="+pair.Name)
			}
			target.Set(pair.Name, text)
		}
	}

	return result, nil
}

// SplitPairs splits a comma separated list of name:value pairs. Entries with
// no colon, or with the colon first or last, are dropped.
func SplitPairs(value string) []Pair {
	if value == "" {
		return nil
	}
	var out []Pair
	for _, entry := range strings.Split(value, ",") {
		if pair, ok := SplitPair(entry); ok {
			out = append(out, pair)
		}
	}
	return out
}

// SplitPair splits entry on its first colon.
func SplitPair(entry string) (Pair, bool) {
	idx := strings.IndexByte(entry, ':')
	if idx <= 0 || idx >= len(entry)-1 {
		return Pair{}, false
	}
	return Pair{Name: entry[:idx], Value: entry[idx+1:]}, true
}

// DecodeText decodes standard base64 and requires the bytes to be valid UTF-8.
// Padding may be omitted entirely but must be correct when present.
func DecodeText(encoded string) (string, error) {
	// encoding/base64 skips \r and \n; treat them as outside the alphabet.
	if strings.ContainsAny(encoded, "\r\n") {
		return "", sketch.NewError(sketch.KindDecode, "decode", "", errLineBreak)
	}
	enc := base64.StdEncoding
	if len(encoded)%4 != 0 && !strings.Contains(encoded, "=") {
		enc = base64.RawStdEncoding
	}
	data, err := enc.DecodeString(encoded)
	if err != nil {
		return "", sketch.NewError(sketch.KindDecode, "decode", "", err)
	}
	if !utf8.Valid(data) {
		return "", sketch.NewError(sketch.KindEncoding, "decode", "", errDecodedUTF8)
	}
	return string(data), nil
}

func wrapPath(err error, path string) error {
	if e, ok := err.(*sketch.Error); ok {
		e.Path = path
		return e
	}
	return err
}
