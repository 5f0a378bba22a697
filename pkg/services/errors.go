package services

import "github.com/pkg/errors"

var ErrSessionNotFound = errors.New("session not found")
