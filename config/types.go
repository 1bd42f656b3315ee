package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port       int    `yaml:"port" validate:"gte=0,lte=65535"`
	ListenAddr string `yaml:"listenAddr" validate:"omitempty,ip"`
}

// DataConfig points at the station document and trip log of one dataset.
// Both accept an http(s) URL or a local file path.
type DataConfig struct {
	StationsURL string `yaml:"stationsURL" validate:"required_with=TripsURL"`
	TripsURL    string `yaml:"tripsURL" validate:"required_with=StationsURL"`
	Timezone    string `yaml:"timezone" validate:"omitempty,timezone"`
	CachePath   string `yaml:"cachePath"` // msgpack snapshot of the parsed dataset
	TimeoutMS   int    `yaml:"timeoutMS" validate:"gte=0"`
}

// StoreConfig contains SQLite store configuration
type StoreConfig struct {
	SQLitePath string `yaml:"sqlitePath"`
}

// TrafficConfig contains aggregation service configuration
type TrafficConfig struct {
	ResponseCacheSize int `yaml:"responseCacheSize" validate:"gte=0"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Dataset represents a single named dataset configuration
type Dataset struct {
	Name string     `yaml:"name" validate:"required"`
	Data DataConfig `yaml:"data" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig  `yaml:"server" validate:"required"`
	Data     DataConfig    `yaml:"data"`
	Store    StoreConfig   `yaml:"store"`
	Traffic  TrafficConfig `yaml:"traffic"`
	Logging  LoggingConfig `yaml:"logging"`
	Datasets []Dataset     `yaml:"datasets"`
}
