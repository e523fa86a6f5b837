package model

import "time"

// Token is the persisted record of an issued bearer credential. Rows are
// written once per successful authentication; IsCanceled starts false and no
// write path currently flips it.
type Token struct {
	UserID      uint      `json:"user_id" gorm:"column:UserID;not null;index"`
	Token       string    `json:"token" gorm:"column:Token;size:1024;not null"`
	CreatedTime time.Time `json:"created_time" gorm:"column:CreatedTime"`
	ExpiresTime time.Time `json:"expires_time" gorm:"column:ExpiresTime"`
	IsCanceled  bool      `json:"is_canceled" gorm:"column:IsCanceled;default:false"`
}

// TableName pins the pre-existing table name.
func (Token) TableName() string {
	return "Tokens"
}
