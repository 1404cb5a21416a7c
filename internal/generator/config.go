package generator

// Config drives the synthetic data generator.
type Config struct {
	NumNews     int
	NumScores   int
	NumProducts int
	NumUsers    int
	NumOrders   int
	Seed        int64
}

// DefaultConfig returns settings sized for a demo storefront.
func DefaultConfig() Config {
	return Config{
		NumNews:     50,
		NumScores:   40,
		NumProducts: 60,
		NumUsers:    200,
		NumOrders:   500,
		Seed:        42,
	}
}
