package index

type Config struct {
	// REGION caches the rectangle of every node, SPLIT prunes by the splitting lines only
	Pruning string `envconfig:"KDSET_PRUNING" default:"REGION"`
	// Replay the point log into the tree on start
	Replay bool `envconfig:"KDSET_REPLAY" default:"true"`
}
