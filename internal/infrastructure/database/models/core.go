package models

import (
	"time"

	"github.com/lib/pq"
)

type Profile struct {
	ID        string         `json:"id" gorm:"primaryKey;type:text"`
	Email     string         `json:"email" gorm:"type:text;index"`
	FullName  string         `json:"fullName" gorm:"type:text"`
	AvatarURL string         `json:"avatarUrl" gorm:"type:text"`
	Bio       string         `json:"bio" gorm:"type:text"`
	Skills    pq.StringArray `json:"skills" gorm:"type:text[]"`
	CDate     time.Time      `json:"cdate" gorm:"<-:create;type:timestamp with time zone;not null"`
	MDate     time.Time      `json:"mdate" gorm:"type:timestamp with time zone;not null"`
}

type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	OwnerID     string    `json:"ownerId" gorm:"type:text;index;not null"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"type:text;index"`
	Stage       string    `json:"stage" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"<-:create;type:timestamp with time zone;not null;index"`
	MDate       time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null"`
}

type ProjectMember struct {
	ProjectID string    `json:"projectId" gorm:"primaryKey;type:text"`
	Project   Project   `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	UserID    string    `json:"userId" gorm:"primaryKey;type:text;index"`
	Role      string    `json:"role" gorm:"type:text;not null"`
	JoinedAt  time.Time `json:"joinedAt" gorm:"type:timestamp with time zone;not null"`
}

type Role struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	ProjectID   string         `json:"projectId" gorm:"type:text;index;not null"`
	Project     Project        `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Skills      pq.StringArray `json:"skills" gorm:"type:text[]"`
	Status      string         `json:"status" gorm:"type:text;not null;default:'open'"`
	CDate       time.Time      `json:"cdate" gorm:"<-:create;type:timestamp with time zone;not null"`
}

type RoleApplication struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	RoleID      string    `json:"roleId" gorm:"type:text;not null;uniqueIndex:uniq_role_applicant"`
	Role        Role      `json:"-" gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:CASCADE;"`
	ApplicantID string    `json:"applicantId" gorm:"type:text;not null;uniqueIndex:uniq_role_applicant;index"`
	Status      string    `json:"status" gorm:"type:text;not null"`
	Message     string    `json:"message" gorm:"type:text"`
	AppliedAt   time.Time `json:"appliedAt" gorm:"type:timestamp with time zone;not null"`
}

type NextStep struct {
	ID          string     `json:"id" gorm:"primaryKey;type:text"`
	ProjectID   string     `json:"projectId" gorm:"type:text;index;not null"`
	Project     Project    `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE;"`
	Title       string     `json:"title" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Completed   bool       `json:"completed" gorm:"type:boolean;not null;default:false"`
	DueDate     *time.Time `json:"dueDate" gorm:"type:timestamp with time zone"`
	CDate       time.Time  `json:"cdate" gorm:"<-:create;type:timestamp with time zone;not null"`
	MDate       time.Time  `json:"mdate" gorm:"type:timestamp with time zone;not null"`
}

type EcosystemEntry struct {
	ID          string         `json:"id" gorm:"primaryKey;type:text"`
	Kind        string         `json:"kind" gorm:"type:text;index;not null"`
	Name        string         `json:"name" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text"`
	URL         string         `json:"url" gorm:"type:text"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
}
