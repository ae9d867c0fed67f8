package services

import (
	"sort"

	"bridgesched/pkg/contracts/domain"
)

// TeamOption is one entry of the team selection dropdown.
type TeamOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TeamService is the read-only directory of inspection teams, project office
// contacts and county names. It is seeded at startup and shared across
// requests; nothing mutates it afterwards.
type TeamService struct {
	teams    []domain.Team
	contacts []domain.Personnel
	counties map[int]string
}

// NewTeamService creates a directory seeded with the Region 8 program data.
func NewTeamService() *TeamService {
	return &TeamService{
		teams:    region8Teams(),
		contacts: projectContacts(),
		counties: region8Counties(),
	}
}

// List returns dropdown options sorted by team leader name.
func (s *TeamService) List() []TeamOption {
	teams := make([]domain.Team, len(s.teams))
	copy(teams, s.teams)
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].TeamLeader < teams[j].TeamLeader
	})

	options := make([]TeamOption, 0, len(teams))
	for _, t := range teams {
		options = append(options, TeamOption{Value: t.Key(), Label: t.TeamLeader})
	}
	return options
}

// Resolve looks a team up by its key (the leader's surname).
func (s *TeamService) Resolve(key string) (domain.Team, bool) {
	for _, t := range s.teams {
		if t.Key() == key {
			return t, true
		}
	}
	return domain.Team{}, false
}

// CountyName resolves a master-sheet county ID; unknown IDs resolve to "".
func (s *TeamService) CountyName(id int) string {
	return s.counties[id]
}

// Teams returns the inspection teams printed in the schedule header.
func (s *TeamService) Teams() []domain.Team {
	return s.teams
}

// Contacts returns the project office contacts printed in the schedule
// header.
func (s *TeamService) Contacts() []domain.Personnel {
	return s.contacts
}

func region8Counties() map[int]string {
	return map[int]string{
		1: "Columbia",
		2: "Dutchess",
		3: "Orange",
		4: "Putnam",
		5: "Rockland",
		6: "Ulster",
		7: "Westchester",
	}
}

func region8Teams() []domain.Team {
	return []domain.Team{
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Tom Barrell", ATL: "Nick Diflorio", Phone: "518-330-8841"},
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Ben Kolesnik", ATL: "Frank Fraser", Phone: "845-596-7106"},
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Oleg Shyputa", ATL: "Dan Rivie", Phone: "646-387-3354"},
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Matt Bacon", ATL: "Nick Mendola", Phone: "774-239-9739"},
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Kevin Milligan", ATL: "Christian Flores", Phone: "212-784-0037"},
		{Employer: domain.EmployerWSPUSA, TeamLeader: "Dan Hadden", ATL: "Dionis Demukaj", Phone: "845-661-6525"},
		{Employer: domain.EmployerSouthCol, TeamLeader: "Shuangbi Chen", ATL: "Bo Lun Yang", Phone: "518-955-1990"},
		{Employer: domain.EmployerLuEng, TeamLeader: "Laura Fulford", ATL: "Ruzen Shafir", Phone: "518-577-7117"},
	}
}

func projectContacts() []domain.Personnel {
	return []domain.Personnel{
		{Name: "Salvatore Iodice", Role: "Project Manager", CellPhone: "(917) 763-2519"},
		{Name: "Amy Hutcheson", Role: "Asst. Project Manager", OfficePhone: "(914) 449-9038", CellPhone: "917-902-0186"},
		{Name: "Karen Tomapat", Role: "Scheduling/Office Assistant", OfficePhone: "(914) 449-9144", CellPhone: "845-283-0224"},
		{Name: "Stephanie Santiago", Role: "Office Assistant", CellPhone: "917-509-0650"},
		{Name: "Stacie Diamond", Role: "Asst. Project Manager", OfficePhone: "(914) 449-9136", CellPhone: "845-642-7036"},
		{Name: "Robert Seeley", Role: "Quality Control", CellPhone: "(914) 262-2766"},
	}
}
