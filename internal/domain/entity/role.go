package entity

// UserType tags an account with the profile kind it owns. It is fixed at
// registration.
type UserType string

const (
	UserTypePatient UserType = "patient"
	UserTypeDoctor  UserType = "doctor"
)

func (t UserType) Valid() bool {
	return t == UserTypePatient || t == UserTypeDoctor
}

func (t UserType) String() string {
	return string(t)
}
