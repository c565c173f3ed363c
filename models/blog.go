package models

// Blog holds the structure for the blogs table
type Blog struct {
	ID      uint   `json:"id" gorm:"primaryKey;autoIncrement" yaml:"-"`
	Title   string `json:"title" gorm:"type:text" yaml:"title"`
	Author  string `json:"author" gorm:"type:text" yaml:"author"`
	Date    string `json:"date" gorm:"type:text" yaml:"date"`
	Summary string `json:"summary" gorm:"type:text" yaml:"summary"`
	Content string `json:"content" gorm:"type:text" yaml:"content"`
}

// TableName specifies the table name for Blog
func (Blog) TableName() string {
	return "blogs"
}
