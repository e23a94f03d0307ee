package conf

import (
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
)

// Bootstrap is the root of the configuration tree.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Tmdb   *Tmdb   `json:"tmdb"`
	Search *Search `json:"search"`
	Auth   *Auth   `json:"auth"`
}

type Server struct {
	Http *Server_HTTP `json:"http"`
}

type Server_HTTP struct {
	Network string    `json:"network"`
	Addr    string    `json:"addr"`
	Timeout *Duration `json:"timeout"`
}

// Data selects and configures the key-value storage backend.
type Data struct {
	// Storage is one of memory, redis, postgres, sqlite or mongo.
	Storage  string         `json:"storage"`
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
	Mongo    *Data_Mongo    `json:"mongo"`
}

// Data_Database is the DSN for postgres or the file path for sqlite.
type Data_Database struct {
	Source string `json:"source"`
}

type Data_Redis struct {
	Addr         string    `json:"addr"`
	ReadTimeout  *Duration `json:"read_timeout"`
	WriteTimeout *Duration `json:"write_timeout"`
}

type Data_Mongo struct {
	Uri      string `json:"uri"`
	Database string `json:"database"`
}

// Tmdb configures the movie metadata API client.
type Tmdb struct {
	BaseUrl      string    `json:"base_url"`
	ImageBaseUrl string    `json:"image_base_url"`
	ApiKey       string    `json:"api_key"`
	Timeout      *Duration `json:"timeout"`
	MaxRetries   int32     `json:"max_retries"`
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64 `json:"rate_limit"`
}

type Search struct {
	Debounce       *Duration `json:"debounce"`
	MinQueryLength int32     `json:"min_query_length"`
}

type Auth struct {
	Token string `json:"token"`
}

// Duration decodes "1.5s" style strings into a protobuf duration.
type Duration struct {
	*durationpb.Duration
}

// NewDuration wraps d.
func NewDuration(d time.Duration) *Duration {
	return &Duration{Duration: durationpb.New(d)}
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	pb := new(durationpb.Duration)
	if err := protojson.Unmarshal(b, pb); err != nil {
		return err
	}
	d.Duration = pb
	return nil
}

// AsDuration returns zero for an unset duration.
func (d *Duration) AsDuration() time.Duration {
	if d == nil || d.Duration == nil {
		return 0
	}
	return d.Duration.AsDuration()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Duration == nil {
		return []byte("null"), nil
	}
	return protojson.Marshal(d.Duration)
}
