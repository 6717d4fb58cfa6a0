package models

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"                      json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"                          json:"username"`
	PasswordHash string    `gorm:"not null"                                      json:"-"`
	Products     []Product `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	ImageLink   string  `gorm:"size:2048"                json:"imageLink"`
	Description string  `gorm:"type:text"                json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	UserID      uint    `gorm:"index;not null"           json:"userId"`
}
