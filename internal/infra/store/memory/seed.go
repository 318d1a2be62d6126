package memory

import "github.com/Tsedii1275/campusadmin/internal/core/domain"

// seedUsers is the fixed roster present at process start.
func seedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Abebe Kebede", Email: "abebe.kebede@university.edu.et", Role: "Registrar", Status: domain.StatusActive, Campus: "Main Campus", Avatar: "AK"},
		{ID: 2, Name: "Sara Tesfaye", Email: "sara.tesfaye@university.edu.et", Role: "Facility Manager", Status: domain.StatusActive, Campus: "Technology Campus", Avatar: "ST"},
		{ID: 3, Name: "Dawit Haile", Email: "dawit.haile@university.edu.et", Role: "Trainer", Status: domain.StatusActive, Campus: "Main Campus", Avatar: "DH"},
		{ID: 4, Name: "Tigist Alemu", Email: "tigist.alemu@university.edu.et", Role: "Rental Officer", Status: domain.StatusInactive, Campus: "Health Sciences Campus", Avatar: "TA"},
		{ID: 5, Name: "Yonas Girma", Email: "yonas.girma@university.edu.et", Role: "Campus Admin", Status: domain.StatusActive, Campus: "Technology Campus", Avatar: "YG"},
	}
}

// seedProfile is the fixed administrator profile.
func seedProfile() domain.Profile {
	return domain.Profile{
		ID:         1,
		Name:       "Alemu Bekele",
		Email:      "admin@university.edu.et",
		Role:       "System Administrator",
		Department: "ICT Directorate",
	}
}
