// Package sensor defines the boundary between the protocol core and
// the sensor ingestion collaborator (Section 1 / 4.12): UART framing
// and parsing of the raw flame/fan/temperature readings are out of
// scope here, and supplied by whatever drives the real hardware. This
// package only carries the Sample shape and a synthetic ticker Source
// for tests and the reference binary.
package sensor

// Sample is one reading from the external sensor collaborator.
type Sample struct {
	Flame bool
	Fan   uint8 // percent, 0-100
	Temp  int16 // centidegrees Celsius
}

// Source supplies a stream of samples. Real firmware backs this with
// a UART driver; this core only consumes the channel.
type Source interface {
	Samples() <-chan Sample
}
