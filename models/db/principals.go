package dbmodels

import (
	"time"
)

// Reviewer is contractor-side staff deciding on applications.
type Reviewer struct {
	EmployeeID   int64      `gorm:"primaryKey;autoIncrement" json:"employee_id"`
	EmployeeName string     `gorm:"type:varchar(255)" json:"employee_name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	LastLogin    *time.Time `json:"last_login"`
}

// Applicant is a department/unit that submits rebate requests and signs in
// with its numeric department id.
type Applicant struct {
	DepartmentID   int64      `gorm:"primaryKey;autoIncrement" json:"department_id"`
	DepartmentName string     `gorm:"type:varchar(255)" json:"department_name"`
	Email          string     `gorm:"type:varchar(255)" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255)" json:"-"`
	LastLogin      *time.Time `json:"last_login"`
}

// ApplicationSponsor is the funding entity disbursing approved amounts.
type ApplicationSponsor struct {
	SponsorID    int64      `gorm:"primaryKey;autoIncrement" json:"sponsor_id"`
	SponsorName  string     `gorm:"type:varchar(255)" json:"sponsor_name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	LastLogin    *time.Time `json:"last_login"`
}
