package model

// User is an application login. The username is the natural key.
//
// Passwords are stored in plaintext in the sheet. This is a known weakness
// inherited from the data format; changing it would break every deployed
// spreadsheet, so it is flagged here rather than silently fixed.
type User struct {
	Username  string
	Password  string
	LastLogin string
}
