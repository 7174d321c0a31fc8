// File: models/credentials.go
package models

// ----------------------- user model -----------------------

// User is a dashboard account. Password holds a bcrypt hash.
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ---------------------- credentials model ----------------------

// Credentials is the on-disk list of accounts.
type Credentials struct {
	Users []User `yaml:"users"`
}

// Find returns the user with the given name.
func (c *Credentials) Find(username string) (User, bool) {
	for _, u := range c.Users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}
