// models.go this is our database models
package main

import "encoding/json"

type Project struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Title        string   `gorm:"not null" json:"title"`
	Category     string   `gorm:"not null" json:"category"`
	Description  string   `gorm:"type:text;not null" json:"description"`
	Technologies []string `gorm:"serializer:json;type:text;not null" json:"technologies"`
	GithubURL    *string  `json:"github_url"`
	LiveURL      *string  `json:"live_url"`
}

type Skill struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Category  string `gorm:"not null" json:"category"`
	Icon      string `gorm:"not null" json:"icon"`
	SkillName string `gorm:"not null" json:"skill_name"`
	Level     int    `gorm:"not null" json:"level"` // 0-100, not enforced
}

// Record is a free-form JSON object kept exactly as the client sent it.
// Member values are stored raw, so numbers, nesting and unknown keys all
// round-trip.
type Record map[string]json.RawMessage

type About struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Highlights  []Record `gorm:"serializer:json;type:text" json:"highlights"` // usually {number, label}
	PhotoURL    *string  `json:"photo_url"`
}

// TableName keeps the singular table names the site has always used.
func (About) TableName() string { return "about" }

type Hero struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Subtitle    string `gorm:"not null" json:"subtitle"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Hero) TableName() string { return "hero" }

type Contact struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"not null" json:"email"`
	Linkedin     *string `json:"linkedin"`
	Github       *string `json:"github"`
	Instagram    *string `json:"instagram"`
	Whatsapp     *string `json:"whatsapp"`
	Phone        *string `json:"phone"`
	LinkedinURL  *string `json:"linkedin_url"`
	GithubURL    *string `json:"github_url"`
	InstagramURL *string `json:"instagram_url"`
	WhatsappURL  *string `json:"whatsapp_url"`
}

func (Contact) TableName() string { return "contact" }

type BlogPost struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     *string `gorm:"type:text" json:"excerpt"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	PublishedAt *string `json:"published_at"` // ISO date string
}

type Resume struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	Experience      []Record            `gorm:"serializer:json;type:text;not null" json:"experience"` // {title, company, period, description}
	Education       []Record            `gorm:"serializer:json;type:text;not null" json:"education"`  // {degree, school, period, description}
	Certifications  []string            `gorm:"serializer:json;type:text" json:"certifications"`
	TechnicalSkills map[string][]string `gorm:"serializer:json;type:text" json:"technical_skills"`
}

func (Resume) TableName() string { return "resume" }

// allModels is the migration set, in the order the tables were first created.
var allModels = []interface{}{
	&Project{},
	&Skill{},
	&About{},
	&Hero{},
	&Contact{},
	&BlogPost{},
	&Resume{},
}
