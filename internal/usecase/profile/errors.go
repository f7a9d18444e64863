package profile

import "errors"

var errNoSource = errors.New("no fact source configured")
