package memory

import "errors"

var ErrAlreadyExists = errors.New("record with this ID already exists")
