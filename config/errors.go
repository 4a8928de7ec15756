package config

import "github.com/rotisserie/eris"

var ErrInvalidConfig = eris.New("invalid config")
