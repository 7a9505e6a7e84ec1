package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrReadState      = errors.New("failed to read state file")
	ErrDoctorFailed   = errors.New("doctor found problems")
)

// File permission constants.
const (
	dirPermissions   = 0o750 // rwxr-x---: owner full, group read+execute
	statePermissions = 0o600 // state files embed generated images and prompts
)
