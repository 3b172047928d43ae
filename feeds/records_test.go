package feeds

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

const plantFeed = `{
  "temp": [{"Value": 21.5, "Time": "10:00:00"}, {"Value": 22, "Time": "10:00:01"}],
  "door": [{"Value": true, "Time": "10:00:00"}, {"Value": null, "Time": "10:00:01"}],
  "alpha": [{"Value": 1, "Time": 3}]
}`

func TestDecodeRecordsKeepsDocumentOrder(t *testing.T) {
	recs, err := DecodeRecords(strings.NewReader(plantFeed))
	require.NoError(t, err)

	assert.Equal(t, []string{"temp", "door", "alpha"}, recs.Names())

	temp := recs.Get("temp")
	require.Len(t, temp, 2)
	assert.Equal(t, trend.Number(21.5), temp[0].Value)
	assert.Equal(t, "10:00:01", temp[1].Time)

	door := recs.Get("door")
	assert.Equal(t, trend.Boolean(true), door[0].Value)
	assert.True(t, door[1].Value.IsNull())

	assert.Equal(t, "3", recs.Get("alpha")[0].Time)
}

func TestDecodeRecordsRepeatedChannel(t *testing.T) {
	recs, err := DecodeRecords(strings.NewReader(`{"a":[{"Value":1}],"b":[],"a":[{"Value":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, recs.Names())
	assert.Len(t, recs.Get("a"), 2)
}

func TestDecodeRecordsErrors(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{"not an object", `[1, 2]`},
		{"string value", `{"a": [{"Value": "12"}]}`},
		{"object value", `{"a": [{"Value": {"x": 1}}]}`},
		{"channel not an array", `{"a": 5}`},
		{"truncated", `{"a": [{"Value": 1}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrMalformedFeed)
		})
	}
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(json.RawMessage(` 4.25 `))
	require.NoError(t, err)
	assert.Equal(t, trend.Number(4.25), v)

	v, err = DecodeValue(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v, err = DecodeValue(json.RawMessage(`false`))
	require.NoError(t, err)
	assert.Equal(t, trend.Boolean(false), v)

	_, err = DecodeValue(json.RawMessage(`"true"`))
	assert.ErrorIs(t, err, ErrMalformedFeed)
}

func TestLoadFiles(t *testing.T) {
	defer logging.QuietTest(t)()
	dir := fs.NewDir(t, "feeds",
		fs.WithFile("a.json", plantFeed),
		fs.WithFile("b.json", `{"temp": [{"Value": 30, "Time": "11:00:00"}]}`),
		fs.WithFile("bad.json", `{"temp": [{"Value": "x"}]}`),
	)

	sources, err := LoadFiles(context.Background(), dir.Join("a.json"), dir.Join("b.json"))
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, 3, sources[0].Len())
	assert.Equal(t, []string{"temp"}, sources[1].Names())

	_, err = LoadFiles(context.Background(), dir.Join("bad.json"))
	assert.ErrorIs(t, err, ErrMalformedFeed)
	assert.Contains(t, err.Error(), "bad.json")

	_, err = LoadFiles(context.Background(), dir.Join("missing.json"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadFiles(ctx, dir.Join("a.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFilesFeedsImport(t *testing.T) {
	defer logging.QuietTest(t)()
	dir := fs.NewDir(t, "feeds", fs.WithFile("a.json", plantFeed))

	sources, err := LoadFiles(context.Background(), dir.Join("a.json"))
	require.NoError(t, err)

	e, err := trend.NewEngine(trend.DefaultConfig(), nil)
	require.NoError(t, err)
	report, err := e.Import(context.Background(), sources, 10)
	require.NoError(t, err)
	assert.Len(t, report.Channels, 3)
	assert.Equal(t, 2, e.Len("temp"))
}
