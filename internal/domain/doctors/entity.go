package doctors

import "time"

// Doctor is an authenticated clinic user. Only doctors hold credentials;
// everything behind the API is doctor-facing.
type Doctor struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Doctor) TableName() string { return "doctors" }
