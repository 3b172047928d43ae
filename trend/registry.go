package trend

import (
	"fmt"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/trendchart/logging"
)

// ChannelKind is fixed when a channel is first seen.
type ChannelKind int

const (
	Analog ChannelKind = iota
	Digital
)

func (k ChannelKind) String() string {
	if k == Digital {
		return "digital"
	}
	return "analog"
}

// Shared area identifiers.
const (
	DigitalAreaID = "DigitalChartArea"
	AnalogAreaID  = "AnalogChartArea"

	// Dedicated analog areas are named after their channel with this prefix.
	DedicatedAreaPrefix = "AnalogChartArea/"
)

// Channel is one named, independently buffered signal.
type Channel struct {
	Name string
	Kind ChannelKind

	// Lane is the vertical slot of a digital channel in the digital area.
	// Always 0 for analog channels.
	Lane int

	Area  string
	Color Color
}

// Area is a logical display area shared by one or more channels.
type Area struct {
	ID        string
	Kind      ChannelKind
	Dedicated bool
	YMin      float64
	YMax      float64
}

// Registry classifies channels on first sight and remembers them until Reset.
type Registry struct {
	cfg Config

	channels map[string]*Channel
	order    []*Channel
	areas    map[string]*Area
	areaIDs  []string

	digitalCount int
	paletteNext  int

	// OnAreaCreated is called once for every new area, after it is registered.
	OnAreaCreated func(a *Area)
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{cfg: cfg}
	r.Reset()
	return r
}

// Resolve returns the channel called name, creating and classifying it from
// sample when it is not known yet. dedicatedArea only matters for new analog channels.
func (r *Registry) Resolve(name string, sample Value, dedicatedArea bool) (*Channel, error) {
	if ch, ok := r.channels[name]; ok {
		return ch, nil
	}

	ch := &Channel{Name: name}
	switch sample.Kind() {
	case KindNull:
		return nil, fmt.Errorf("channel %q needs a sample to be classified: %w", name, ErrInvalidValue)
	case KindBoolean:
		ch.Kind = Digital
		ch.Lane = r.digitalCount
		ch.Area = r.ensureArea(DigitalAreaID, Digital, false).ID
		r.digitalCount++
	case KindNumber:
		ch.Kind = Analog
		if dedicatedArea {
			ch.Area = r.ensureArea(DedicatedAreaPrefix+name, Analog, true).ID
		} else {
			ch.Area = r.ensureArea(AnalogAreaID, Analog, false).ID
		}
	}
	ch.Color = r.nextColor()

	r.channels[name] = ch
	r.order = append(r.order, ch)
	logging.Debug("registered %s channel %q (lane %d, area %s)", ch.Kind, name, ch.Lane, ch.Area)
	return ch, nil
}

// Channel returns a known channel.
func (r *Registry) Channel(name string) (*Channel, bool) {
	ch, ok := r.channels[name]
	return ch, ok
}

// Channels returns channels in creation order.
func (r *Registry) Channels() []*Channel {
	return append([]*Channel(nil), r.order...)
}

// Names returns channel names in creation order.
func (r *Registry) Names() []string {
	return gfn.Map(r.order, func(ch *Channel) string { return ch.Name })
}

// ChannelsInArea returns the channels drawn in an area, in creation order.
func (r *Registry) ChannelsInArea(areaID string) (out []*Channel) {
	for _, ch := range r.order {
		if ch.Area == areaID {
			out = append(out, ch)
		}
	}
	return
}

// Area returns a known area.
func (r *Registry) Area(id string) (*Area, bool) {
	a, ok := r.areas[id]
	return a, ok
}

// Areas returns areas in creation order.
func (r *Registry) Areas() []*Area {
	return gfn.Map(r.areaIDs, func(id string) *Area { return r.areas[id] })
}

// DigitalCount returns the number of digital lanes handed out.
func (r *Registry) DigitalCount() int {
	return r.digitalCount
}

// Reset forgets every channel and area.
func (r *Registry) Reset() {
	r.channels = make(map[string]*Channel)
	r.order = nil
	r.areas = make(map[string]*Area)
	r.areaIDs = nil
	r.digitalCount = 0
	r.paletteNext = 0
}

func (r *Registry) ensureArea(id string, kind ChannelKind, dedicated bool) *Area {
	if a, ok := r.areas[id]; ok {
		return a
	}
	a := &Area{ID: id, Kind: kind, Dedicated: dedicated}
	if kind == Digital {
		a.YMax = r.cfg.DigitalLaneScale
	} else {
		a.YMax = r.cfg.AnalogAxisMax
	}
	r.areas[id] = a
	r.areaIDs = append(r.areaIDs, id)
	logging.Debug("created %s area %s", kind, id)
	if r.OnAreaCreated != nil {
		r.OnAreaCreated(a)
	}
	return a
}

func (r *Registry) nextColor() Color {
	if len(r.cfg.Palette) == 0 {
		return ""
	}
	c := r.cfg.Palette[r.paletteNext%len(r.cfg.Palette)]
	r.paletteNext++
	return c
}
