package model

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	LoginToken   *string
	CreatedAt    time.Time
}

type Teacher struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	Email        string
	Subjects     string
	IsAdmin      bool
	Token        *string
}

type Subject struct {
	ID   int64
	Name string
}

type Class struct {
	ID            int64
	Name          string
	MainTeacherID *int64
}

type Student struct {
	ID      int64
	Name    string
	ClassID *int64
}

type Parent struct {
	ID    int64
	Name  string
	Email string
}

type Mark struct {
	ID           int64
	StudentID    int64
	SubjectID    int64
	TeacherID    int64
	Value        float64
	DateAssigned time.Time
	Comment      *string
}

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	default:
		return false
	}
}
