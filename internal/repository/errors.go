package repository

import "errors"

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSignUpFailed       = errors.New("sign up failed")
	ErrSignInFailed       = errors.New("sign in failed")
	ErrUserNotFound       = errors.New("failed to get user")
	ErrCollectionNotFound = errors.New("collection not found")
)
