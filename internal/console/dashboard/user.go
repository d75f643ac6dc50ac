package dashboard

import "github.com/nnsolutions/isms/internal/console/view"

// UserPath is the end-user landing page.
const UserPath = "/dashboard"

// User is the static landing page for staff accounts.
type User struct {
	*base
}

func NewUser(d Deps) *User {
	u := &User{base: newBase(d, UserPath, "user_dashboard")}
	u.init(view.NewRouter(), map[view.ID]view.Spec{view.Dashboard: {}}, d.Interval)
	return u
}

// Greeting is the welcome line of the landing page.
func (u *User) Greeting() string {
	name := u.sess.Username
	if name == "" {
		name = "User"
	}
	return "Welcome, " + name
}
