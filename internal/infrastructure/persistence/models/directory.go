package models

import "github.com/thankyou/backend/internal/domain/directory"

// UserModel is the directory's user row
type UserModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"type:varchar(255);not null"`
	ProfileURL string `gorm:"type:varchar(1024);not null;default:''"`
	PhotoURL   string `gorm:"type:varchar(1024);not null;default:''"`
	IsAdmin    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a directory User
func (m *UserModel) ToDomain() directory.User {
	return directory.User{
		ID:         m.ID,
		Name:       m.Name,
		ProfileURL: m.ProfileURL,
		PhotoURL:   m.PhotoURL,
		IsAdmin:    m.IsAdmin,
	}
}

// GroupModel is the directory's group row
type GroupModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"type:varchar(255);not null"`
	ExtranetAreaID *int64
}

// TableName returns the table name for GORM
func (GroupModel) TableName() string {
	return "user_groups"
}

// ToDomain converts the model to a directory Group
func (m *GroupModel) ToDomain() directory.Group {
	return directory.Group{
		ID:             m.ID,
		Name:           m.Name,
		ExtranetAreaID: m.ExtranetAreaID,
	}
}

// GroupMemberModel links users to groups
type GroupMemberModel struct {
	GroupID int64 `gorm:"primaryKey"`
	UserID  int64 `gorm:"primaryKey;index"`
}

// TableName returns the table name for GORM
func (GroupMemberModel) TableName() string {
	return "user_group_members"
}
