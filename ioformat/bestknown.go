package ioformat

import "github.com/nodewise/pdptw/model"

// bestKnown holds the named benchmark scores referenced by §8's concrete
// test scenarios, keyed by lowercase instance name.
var bestKnown = map[string]model.Score{
	"lc101": {Vehicles: 10, Distance: 828.94},
	"lc201": {Vehicles: 3, Distance: 591.56},
	"lr101": {Vehicles: 19, Distance: 1650.80},
	"lr204": {Vehicles: 2, Distance: 825.52},
	"lrc101": {Vehicles: 14, Distance: 1708.80},
}

// BestKnown returns the recorded best-known score for name, if any.
func BestKnown(name string) (model.Score, bool) {
	s, ok := bestKnown[name]
	return s, ok
}
