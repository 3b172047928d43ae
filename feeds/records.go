// Package feeds decodes recorded and live sample feeds into trend values.
package feeds

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
)

// ErrMalformedFeed is wrapped by every decoding error in this package.
var ErrMalformedFeed = errors.New("malformed feed")

// record is one element of a recorded channel array.
type record struct {
	Value json.RawMessage
	Time  json.RawMessage
}

// DecodeRecords reads a recorded feed of the form
//
//	{"temp": [{"Value": 21.5, "Time": "10:00:00"}, ...], "door": [...]}
//
// Channels keep the order in which they appear in the document. A channel
// that appears twice has its arrays concatenated.
func DecodeRecords(r io.Reader) (*trend.Records, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	out := trend.NewRecords()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading channel name: %w: %w", ErrMalformedFeed, err)
		}
		name := tok.(string)

		var recs []record
		if err := dec.Decode(&recs); err != nil {
			return nil, fmt.Errorf("channel %q: %w: %w", name, ErrMalformedFeed, err)
		}
		samples := make([]trend.Record, 0, len(recs))
		for i, rec := range recs {
			s, err := rec.sample()
			if err != nil {
				return nil, fmt.Errorf("channel %q record %d: %w", name, i, err)
			}
			samples = append(samples, s)
		}
		out.Append(name, samples...)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return out, nil
}

func (r record) sample() (trend.Sample, error) {
	v, err := DecodeValue(r.Value)
	if err != nil {
		return trend.Sample{}, err
	}
	t, err := decodeTime(r.Time)
	if err != nil {
		return trend.Sample{}, err
	}
	return trend.Sample{Value: v, Time: t}, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFeed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedFeed, want, tok)
	}
	return nil
}

// DecodeValue turns a raw JSON scalar into a sample value. Missing values and
// null decode to trend.Null. Strings are rejected, even numeric ones.
func DecodeValue(raw json.RawMessage) (trend.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return trend.Null, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return trend.Null, fmt.Errorf("%w: %w", ErrMalformedFeed, err)
	}
	switch v := v.(type) {
	case bool:
		return trend.Boolean(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return trend.Null, fmt.Errorf("%w: value %s: %w", ErrMalformedFeed, v, err)
		}
		return trend.Number(f), nil
	}
	return trend.Null, fmt.Errorf("%w: unsupported value %s", ErrMalformedFeed, raw)
}

// decodeTime accepts a string or a number; the label is kept verbatim.
func decodeTime(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: time %s", ErrMalformedFeed, raw)
	}
	return n.String(), nil
}

// LoadFiles decodes each file into its own Records, in argument order.
func LoadFiles(ctx context.Context, paths ...string) ([]*trend.Records, error) {
	out := make([]*trend.Records, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		logging.Debug("loaded %s: %d channels", path, recs.Len())
		out = append(out, recs)
	}
	return out, nil
}

func loadFile(path string) (*trend.Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
