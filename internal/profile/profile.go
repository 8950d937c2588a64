package profile

import "strings"

// UserInfo holds the contact and background fields of the user's profile.
type UserInfo struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	Skills         string `json:"skills"`
	Summary        string `json:"summary,omitempty"`
	Education      string `json:"education,omitempty"`
	Certifications string `json:"certifications,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	ID               string `json:"id"`
	Company          string `json:"company"`
	Role             string `json:"role"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Responsibilities string `json:"responsibilities"`
}

// Profile is the caller-owned profile mutated only via Apply.
type Profile struct {
	UserInfo    UserInfo      `json:"userInfo"`
	Experiences []*Experience `json:"experiences"`
}

// Fragment is the output of CV extraction: partial user info plus work
// history entries, applied onto an existing profile with Apply.
type Fragment struct {
	UserInfo    UserInfo      `json:"userInfo"`
	Experiences []*Experience `json:"experiences"`
}

// Apply merges the fragment into the profile. Extracted fields only
// overwrite existing values when non-empty; extracted experiences replace
// the existing list only when the fragment carries any.
func (p *Profile) Apply(f *Fragment) {
	if f == nil {
		return
	}

	p.UserInfo.merge(&f.UserInfo)

	if len(f.Experiences) > 0 {
		p.Experiences = f.Experiences
	}
}

func (u *UserInfo) merge(in *UserInfo) {
	override(&u.FullName, in.FullName)
	override(&u.Email, in.Email)
	override(&u.Phone, in.Phone)
	override(&u.Website, in.Website)
	override(&u.Address, in.Address)
	override(&u.Skills, in.Skills)
	override(&u.Summary, in.Summary)
	override(&u.Education, in.Education)
	override(&u.Certifications, in.Certifications)
}

func override(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}
