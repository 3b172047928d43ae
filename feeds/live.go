package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/panyam/trendchart/trend"
)

// LiveSample is one line of a live feed.
type LiveSample struct {
	Name      string
	Value     trend.Value
	Time      string
	Dedicated bool
}

type liveLine struct {
	Name      string          `json:"name"`
	Value     json.RawMessage `json:"value"`
	Time      json.RawMessage `json:"time"`
	Dedicated bool            `json:"dedicated,omitempty"`
}

// LiveDecoder reads newline delimited JSON samples:
//
//	{"name": "temp", "value": 21.5, "time": "10:00:00"}
//	{"name": "door", "value": true, "time": "10:00:01"}
//
// Setting "dedicated" to true asks for the channel's own analog area.
type LiveDecoder struct {
	dec  *json.Decoder
	line int
}

func NewLiveDecoder(r io.Reader) *LiveDecoder {
	return &LiveDecoder{dec: json.NewDecoder(r)}
}

// Next returns the next sample, or io.EOF once the input is exhausted.
func (d *LiveDecoder) Next() (LiveSample, error) {
	var l liveLine
	if err := d.dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return LiveSample{}, io.EOF
		}
		return LiveSample{}, fmt.Errorf("sample %d: %w: %w", d.line+1, ErrMalformedFeed, err)
	}
	d.line++
	if l.Name == "" {
		return LiveSample{}, fmt.Errorf("sample %d: %w: missing name", d.line, ErrMalformedFeed)
	}
	v, err := DecodeValue(l.Value)
	if err != nil {
		return LiveSample{}, fmt.Errorf("sample %d: %w", d.line, err)
	}
	t, err := decodeTime(l.Time)
	if err != nil {
		return LiveSample{}, fmt.Errorf("sample %d: %w", d.line, err)
	}
	return LiveSample{Name: l.Name, Value: v, Time: t, Dedicated: l.Dedicated}, nil
}

// Stream calls fn for every sample until the input ends, fn fails or ctx is
// cancelled. Reaching the end of input is not an error.
func (d *LiveDecoder) Stream(ctx context.Context, fn func(LiveSample) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := d.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
	}
}
