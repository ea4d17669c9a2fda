package model

type Student struct {
	StudentID  int64  `gorm:"column:student_id;primaryKey;autoIncrement" json:"student_id"`
	FirstName  string `gorm:"column:first_name;type:varchar(50);not null" json:"first_name"`
	MiddleName string `gorm:"column:middle_name;type:varchar(50)" json:"middle_name"`
	LastName   string `gorm:"column:last_name;type:varchar(50);not null" json:"last_name"`
	Email      string `gorm:"column:email;type:varchar(150);uniqueIndex" json:"email"`
	ContactNo  string `gorm:"column:contact_no;type:varchar(20)" json:"contact_no"`
	Address    string `gorm:"column:address;type:text" json:"address"`
	GradeLevel string `gorm:"column:grade_level;type:varchar(20)" json:"grade_level"`
	Section    string `gorm:"column:section;type:varchar(50)" json:"section"`
	SchoolYear string `gorm:"column:school_year;type:varchar(20)" json:"school_year"`
}

func (Student) TableName() string {
	return "students"
}

// FullName assembles "First Middle Last", skipping an empty middle name.
func (s Student) FullName() string {
	if s.MiddleName != "" {
		return s.FirstName + " " + s.MiddleName + " " + s.LastName
	}
	return s.FirstName + " " + s.LastName
}
