package models

type UserRole string

const (
	ReviewerRole  UserRole = "REVIEWER"
	SponsorRole   UserRole = "SPONSOR"
	ApplicantRole UserRole = "APPLICANT"
)

var roleHumanName = map[UserRole]string{
	ReviewerRole:  "Reviewer",
	SponsorRole:   "Sponsor",
	ApplicantRole: "Applicant",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}
