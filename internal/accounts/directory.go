package accounts

// User is an identity record held by a Directory. Password never leaves
// this package; handlers expose PublicUser views only.
type User struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     string
}

// Public strips the credential before the record crosses the wire.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Directory is the identity-lookup capability injected into the handler.
// The demo deployment backs it with a fixed in-memory list; a real identity
// provider implements the same interface.
type Directory interface {
	FindByCredentials(email, password string) (User, bool)
}

type memoryDirectory struct {
	users []User
}

// NewDemoDirectory returns the fixed demo credential list.
func NewDemoDirectory() Directory {
	return &memoryDirectory{users: []User{
		{ID: "1", Email: "admin@pattaya1.com", Password: "admin123", Name: "Pattaya1 Admin", Role: "admin"},
		{ID: "2", Email: "user@pattaya1.com", Password: "user123", Name: "Demo User", Role: "user"},
		{ID: "3", Email: "business@pattaya1.com", Password: "business123", Name: "Business Owner", Role: "business"},
	}}
}

func (d *memoryDirectory) FindByCredentials(email, password string) (User, bool) {
	for _, u := range d.users {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return User{}, false
}
