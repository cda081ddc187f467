package renderer

import "errors"

var (
	ErrNoEngine    = errors.New("renderer: no engine attached")
	ErrInterrupted = errors.New("renderer: interrupted while rendering")
)
