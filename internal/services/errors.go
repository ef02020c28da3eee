package services

import "errors"

var (
	// ErrEmailTaken indicates a principal already exists with the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken indicates a principal already exists with the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrPrincipalNotFound indicates no user or admin matched the lookup.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrWrongPassword indicates the supplied password did not match the hash.
	ErrWrongPassword = errors.New("wrong password")
	// ErrProductNotFound indicates no product exists with the given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists indicates a product already exists with the name.
	ErrProductExists = errors.New("product already exists")
	// ErrNoProducts indicates the catalog is empty.
	ErrNoProducts = errors.New("no products found")
	// ErrSliderNotFound indicates the banner slider has never been created.
	ErrSliderNotFound = errors.New("slider not found")
)
