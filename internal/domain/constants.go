package domain

// Business validation constants
const (
	MinTotalCapacity = 1
	MaxTotalCapacity = 10000
	MaxNameLength    = 255
	MinYear          = 1
	MaxYear          = 9999
)
