package conf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapDecodesDurations(t *testing.T) {
	raw := `{
		"server": {"http": {"addr": "0.0.0.0:8000", "timeout": "1.5s"}},
		"tmdb": {"base_url": "https://api.themoviedb.org/3", "timeout": "5s", "max_retries": 2},
		"search": {"debounce": "0.5s", "min_query_length": 3}
	}`

	var bc Bootstrap
	require.NoError(t, json.Unmarshal([]byte(raw), &bc))

	assert.Equal(t, 1500*time.Millisecond, bc.Server.Http.Timeout.AsDuration())
	assert.Equal(t, 5*time.Second, bc.Tmdb.Timeout.AsDuration())
	assert.Equal(t, int32(2), bc.Tmdb.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, bc.Search.Debounce.AsDuration())
}

func TestDurationUnsetIsZero(t *testing.T) {
	var d *Duration
	assert.Zero(t, d.AsDuration())
	assert.Zero(t, (&Duration{}).AsDuration())
}

func TestDurationRejectsGarbage(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestNewDurationRoundTrip(t *testing.T) {
	b, err := json.Marshal(NewDuration(250 * time.Millisecond))
	require.NoError(t, err)
	assert.JSONEq(t, `"0.250s"`, string(b))

	var d Duration
	require.NoError(t, json.Unmarshal(b, &d))
	assert.Equal(t, 250*time.Millisecond, d.AsDuration())
}

func TestShippedConfigScans(t *testing.T) {
	c := config.New(config.WithSource(file.NewSource("../../configs/config.yaml")))
	require.NoError(t, c.Load())
	t.Cleanup(func() { c.Close() })

	var bc Bootstrap
	require.NoError(t, c.Scan(&bc))
	assert.Equal(t, "sqlite", bc.Data.Storage)
	assert.Equal(t, "cinelist.db", bc.Data.Database.Source)
	assert.Equal(t, 5*time.Second, bc.Server.Http.Timeout.AsDuration())

	// every database key has a field to land in
	db, err := c.Value("data.database").Map()
	require.NoError(t, err)
	keys := make([]string, 0, len(db))
	for k := range db {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"source"}, keys)
}
