package models

import "time"

// UserView is the read projection of a user.
// It never exposes Password.
type UserView struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// NewUserView projects u into its read model.
func NewUserView(u *User) *UserView {
	view := &UserView{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.Address != nil {
		addr := *u.Address
		view.Address = &addr
	}
	return view
}
