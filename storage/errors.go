package storage

import "errors"

var ErrSubmissionNotFound = errors.New("submission not found in storage")
var ErrSubmissionAlreadyExists = errors.New("submission with id already exists")
var ErrClaimConflict = errors.New("submission already claimed by another judge")
var ErrNotClaimOwner = errors.New("claim is held by a different judge")
var ErrVersionConflict = errors.New("submission was modified concurrently")
