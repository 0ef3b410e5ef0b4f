package model

import "errors"

var ErrorCollectionNotFound = errors.New("no users found in local storage")
var ErrorUserNotFound = errors.New("user not found")
var ErrorFetchFailed = errors.New("failed to fetch users")

// field validation
var ErrorEmptyField = errors.New("field is required")
var ErrorInvalidFormat = errors.New("invalid format")
var ErrorBelowMinimum = errors.New("below minimum")

// update submission
var ErrorIncompleteForm = errors.New("all fields must be filled out to update")
var ErrorNoChange = errors.New("no changes made")
var ErrorValidationFailed = errors.New("validation failed")
