package tests

import (
	"shopbot/catalog"
	"shopbot/config"
	"shopbot/models"
)

// testConfig is the demo configuration with every simulated latency
// zeroed so activity tests run at full speed.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Latency = config.LatencyConfig{}
	return cfg
}

// fixedRand always returns v; with a success rate of 0.9, 0.0 forces a
// payment success and 0.99 forces a decline.
func fixedRand(v float64) func() float64 {
	return func() float64 {
		return v
	}
}

// seqRand returns the given values in order, then repeats the last one
func seqRand(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func mustProduct(id int) models.Product {
	p, ok := catalog.ByID(id)
	if !ok {
		panic("unknown product id in test fixture")
	}
	return p
}

func cartLines(ids ...int) []models.CartLine {
	var cart models.Cart
	for _, id := range ids {
		cart.Add(mustProduct(id))
	}
	return cart.Lines
}
