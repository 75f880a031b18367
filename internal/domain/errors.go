package domain

import "errors"

var (
	// ErrUnauthenticated means there is no live upstream access token for the user.
	ErrUnauthenticated = errors.New("no valid headhunter token")

	// ErrNoResume means the user has no resume on headhunter and cannot apply.
	ErrNoResume = errors.New("no resume found")
)
