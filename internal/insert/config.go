package insert

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDSET_INSERT_REQUEST_TIMEOUT" default:"60s"`
	MaxPoints      int           `envconfig:"KDSET_INSERT_MAX_POINTS" default:"100000"`
}
