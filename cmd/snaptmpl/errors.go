package main

import "errors"

// Sentinel errors for command operations
var (
	ErrInputFileNotExist = errors.New("input file does not exist")
	ErrCheckFailed       = errors.New("one or more templates failed to parse")
)
