package model

// User represents a platform account row. Password carries the salted digest
// on the persisted row; it is cleared before the user is handed back to any
// caller.
type User struct {
	ID       uint   `json:"id" gorm:"column:ID;primaryKey"`
	Username string `json:"username" gorm:"column:Username;size:255;not null"`
	Password []byte `json:"-" gorm:"column:Password;size:255"` // Never expose in JSON

	// Token is populated after a successful authentication. Not a column on
	// Users; issued tokens are recorded in Tokens.
	Token string `json:"token,omitempty" gorm:"-"`
}

// TableName pins the pre-existing table name.
func (User) TableName() string {
	return "Users"
}
