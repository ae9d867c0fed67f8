package domain

import (
	"fmt"
	"strings"
)

// Employer is the consultant firm an inspection team belongs to.
type Employer string

const (
	EmployerWSPUSA   Employer = "WSP USA"
	EmployerSouthCol Employer = "South Col"
	EmployerLuEng    Employer = "Lu Eng"
)

// Team is one bridge inspection team: a team leader, an assistant team leader,
// and a contact number.
type Team struct {
	Employer   Employer `json:"employer"`
	TeamLeader string   `json:"team_leader"`
	ATL        string   `json:"atl"`
	Phone      string   `json:"phone"`
}

// Key returns the short identifier used to select a team: the leader's surname.
func (t Team) Key() string {
	parts := strings.Fields(t.TeamLeader)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// String renders the team the way the schedule's teams section lists it.
func (t Team) String() string {
	return fmt.Sprintf("%s: %s, Team Leader; %s, ATL", t.Employer, t.TeamLeader, t.ATL)
}

// Personnel is one project office contact printed in the schedule header.
type Personnel struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	OfficePhone string `json:"office_phone"`
	CellPhone   string `json:"cell_phone"`
}
