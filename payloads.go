package main

import (
	"encoding/json"
	"reflect"
)

// Create payloads use pointers for required scalars so that "required" means
// present in the body; an empty string or a zero level is still accepted.
// Update payloads only touch the keys present in the body: a Field may not be
// null, a Nullable set to null clears the column.

type createPayload[T any] interface {
	model() T
}

type updatePayload[T any] interface {
	apply(*T)
}

// Field is an update value for a NOT NULL column.
type Field[V any] struct {
	Present bool
	Value   V
}

func (f *Field[V]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf(f.Value)}
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Present = true
	return nil
}

// Nullable is an update value for a column that accepts NULL. Present tells
// an omitted key apart from an explicit null.
type Nullable[V any] struct {
	Present bool
	Value   *V
}

func (n *Nullable[V]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func set[V any](dst *V, f Field[V]) {
	if f.Present {
		*dst = f.Value
	}
}

func setNullable[V any](dst **V, n Nullable[V]) {
	if n.Present {
		*dst = n.Value
	}
}

// setNullableList is setNullable for list and map columns, where a nil value
// is stored as NULL.
func setNullableList[V any](dst *V, n Nullable[V]) {
	if !n.Present {
		return
	}
	var v V
	if n.Value != nil {
		v = *n.Value
	}
	*dst = v
}

type ProjectCreate struct {
	Title        *string  `json:"title" validate:"required"`
	Category     *string  `json:"category" validate:"required"`
	Description  *string  `json:"description" validate:"required"`
	Technologies []string `json:"technologies" validate:"required"`
	GithubURL    *string  `json:"github_url"`
	LiveURL      *string  `json:"live_url"`
}

func (p ProjectCreate) model() Project {
	return Project{
		Title:        *p.Title,
		Category:     *p.Category,
		Description:  *p.Description,
		Technologies: p.Technologies,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
	}
}

type ProjectUpdate struct {
	Title        Field[string]    `json:"title"`
	Category     Field[string]    `json:"category"`
	Description  Field[string]    `json:"description"`
	Technologies Field[[]string]  `json:"technologies"`
	GithubURL    Nullable[string] `json:"github_url"`
	LiveURL      Nullable[string] `json:"live_url"`
}

func (p ProjectUpdate) apply(row *Project) {
	set(&row.Title, p.Title)
	set(&row.Category, p.Category)
	set(&row.Description, p.Description)
	set(&row.Technologies, p.Technologies)
	setNullable(&row.GithubURL, p.GithubURL)
	setNullable(&row.LiveURL, p.LiveURL)
}

type SkillCreate struct {
	Category  *string `json:"category" validate:"required"`
	Icon      *string `json:"icon" validate:"required"`
	SkillName *string `json:"skill_name" validate:"required"`
	Level     *int    `json:"level" validate:"required"`
}

func (s SkillCreate) model() Skill {
	return Skill{
		Category:  *s.Category,
		Icon:      *s.Icon,
		SkillName: *s.SkillName,
		Level:     *s.Level,
	}
}

type SkillUpdate struct {
	Category  Field[string] `json:"category"`
	Icon      Field[string] `json:"icon"`
	SkillName Field[string] `json:"skill_name"`
	Level     Field[int]    `json:"level"`
}

func (s SkillUpdate) apply(row *Skill) {
	set(&row.Category, s.Category)
	set(&row.Icon, s.Icon)
	set(&row.SkillName, s.SkillName)
	set(&row.Level, s.Level)
}

type AboutCreate struct {
	Name        *string  `json:"name" validate:"required"`
	Title       *string  `json:"title" validate:"required"`
	Description *string  `json:"description" validate:"required"`
	Highlights  []Record `json:"highlights"`
	PhotoURL    *string  `json:"photo_url"`
}

func (a AboutCreate) model() About {
	return About{
		Name:        *a.Name,
		Title:       *a.Title,
		Description: *a.Description,
		Highlights:  a.Highlights,
		PhotoURL:    a.PhotoURL,
	}
}

type AboutUpdate struct {
	Name        Field[string]      `json:"name"`
	Title       Field[string]      `json:"title"`
	Description Field[string]      `json:"description"`
	Highlights  Nullable[[]Record] `json:"highlights"`
	PhotoURL    Nullable[string]   `json:"photo_url"`
}

func (a AboutUpdate) apply(row *About) {
	set(&row.Name, a.Name)
	set(&row.Title, a.Title)
	set(&row.Description, a.Description)
	setNullableList(&row.Highlights, a.Highlights)
	setNullable(&row.PhotoURL, a.PhotoURL)
}

type HeroCreate struct {
	Name        *string `json:"name" validate:"required"`
	Subtitle    *string `json:"subtitle" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

func (h HeroCreate) model() Hero {
	return Hero{
		Name:        *h.Name,
		Subtitle:    *h.Subtitle,
		Description: *h.Description,
	}
}

type HeroUpdate struct {
	Name        Field[string] `json:"name"`
	Subtitle    Field[string] `json:"subtitle"`
	Description Field[string] `json:"description"`
}

func (h HeroUpdate) apply(row *Hero) {
	set(&row.Name, h.Name)
	set(&row.Subtitle, h.Subtitle)
	set(&row.Description, h.Description)
}

type ContactCreate struct {
	Email        *string `json:"email" validate:"required"`
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

func (c ContactCreate) model() Contact {
	return Contact{
		Email:        *c.Email,
		Linkedin:     c.Linkedin,
		Github:       c.Github,
		Instagram:    c.Instagram,
		Whatsapp:     c.Whatsapp,
		Phone:        c.Phone,
		LinkedinURL:  c.LinkedinURL,
		GithubURL:    c.GithubURL,
		InstagramURL: c.InstagramURL,
		WhatsappURL:  c.WhatsappURL,
	}
}

type ContactUpdate struct {
	Email        Field[string]    `json:"email"`
	Linkedin     Nullable[string] `json:"linkedin"`
	Github       Nullable[string] `json:"github"`
	Instagram    Nullable[string] `json:"instagram"`
	Whatsapp     Nullable[string] `json:"whatsapp"`
	Phone        Nullable[string] `json:"phone"`
	LinkedinURL  Nullable[string] `json:"linkedin_url"`
	GithubURL    Nullable[string] `json:"github_url"`
	InstagramURL Nullable[string] `json:"instagram_url"`
	WhatsappURL  Nullable[string] `json:"whatsapp_url"`
}

func (c ContactUpdate) apply(row *Contact) {
	set(&row.Email, c.Email)
	setNullable(&row.Linkedin, c.Linkedin)
	setNullable(&row.Github, c.Github)
	setNullable(&row.Instagram, c.Instagram)
	setNullable(&row.Whatsapp, c.Whatsapp)
	setNullable(&row.Phone, c.Phone)
	setNullable(&row.LinkedinURL, c.LinkedinURL)
	setNullable(&row.GithubURL, c.GithubURL)
	setNullable(&row.InstagramURL, c.InstagramURL)
	setNullable(&row.WhatsappURL, c.WhatsappURL)
}

type BlogPostCreate struct {
	Title       *string `json:"title" validate:"required"`
	Slug        *string `json:"slug" validate:"required"`
	Excerpt     *string `json:"excerpt"`
	Content     *string `json:"content" validate:"required"`
	PublishedAt *string `json:"published_at"`
}

func (b BlogPostCreate) model() BlogPost {
	return BlogPost{
		Title:       *b.Title,
		Slug:        *b.Slug,
		Excerpt:     b.Excerpt,
		Content:     *b.Content,
		PublishedAt: b.PublishedAt,
	}
}

type BlogPostUpdate struct {
	Title       Field[string]    `json:"title"`
	Slug        Field[string]    `json:"slug"`
	Excerpt     Nullable[string] `json:"excerpt"`
	Content     Field[string]    `json:"content"`
	PublishedAt Nullable[string] `json:"published_at"`
}

func (b BlogPostUpdate) apply(row *BlogPost) {
	set(&row.Title, b.Title)
	set(&row.Slug, b.Slug)
	setNullable(&row.Excerpt, b.Excerpt)
	set(&row.Content, b.Content)
	setNullable(&row.PublishedAt, b.PublishedAt)
}

type ResumeCreate struct {
	Experience      []Record            `json:"experience" validate:"required"`
	Education       []Record            `json:"education" validate:"required"`
	Certifications  []string            `json:"certifications"`
	TechnicalSkills map[string][]string `json:"technical_skills"`
}

func (r ResumeCreate) model() Resume {
	return Resume{
		Experience:      r.Experience,
		Education:       r.Education,
		Certifications:  r.Certifications,
		TechnicalSkills: r.TechnicalSkills,
	}
}

type ResumeUpdate struct {
	Experience      Field[[]Record]               `json:"experience"`
	Education       Field[[]Record]               `json:"education"`
	Certifications  Nullable[[]string]            `json:"certifications"`
	TechnicalSkills Nullable[map[string][]string] `json:"technical_skills"`
}

func (r ResumeUpdate) apply(row *Resume) {
	set(&row.Experience, r.Experience)
	set(&row.Education, r.Education)
	setNullableList(&row.Certifications, r.Certifications)
	setNullableList(&row.TechnicalSkills, r.TechnicalSkills)
}

// ContactMessage is a contact form submission. It is relayed, never stored.
type ContactMessage struct {
	Name    *string `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"required"`
	Subject *string `json:"subject" validate:"required"`
	Message *string `json:"message" validate:"required"`
}
