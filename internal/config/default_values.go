package config

var (
	DefaultGroup     = "toy"
	DefaultA         = "2"
	DefaultB         = "3"
	DefaultP         = "97"
	DefaultGx        = "3"
	DefaultGy        = "6"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
