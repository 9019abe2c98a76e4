// Package fetch retrieves raw tide feeds and the locations catalog from the
// upstream widget API. It only moves text; parsing lives in tidefeed.
package fetch
