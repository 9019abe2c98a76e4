// Package tidefeed turns the plain text tide feed of a single harbour and day
// into a TidesInfo with two high tide and two low tide slots. Feed times are
// reported in a fixed UTC+1 offset and are converted into the observer's zone,
// which may observe daylight saving time. The package also parses the sibling
// locations catalog.
//
// Nothing in this package blocks or keeps state between calls.
package tidefeed
