package query

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KDSET_QUERY_REQUEST_TIMEOUT" default:"30s"`
	MaxPoints      int           `envconfig:"KDSET_QUERY_MAX_POINTS" default:"1000"`
}
