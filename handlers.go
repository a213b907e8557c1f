package main

// handlers.go wires every content type onto the mux

import (
	"net/http"

	"gorm.io/gorm"
)

// Server holds the per-entity resources. Everything is built once at
// startup and shared by all requests.
type Server struct {
	Projects *Resource[Project, ProjectCreate, ProjectUpdate]
	Skills   *Resource[Skill, SkillCreate, SkillUpdate]
	About    *Resource[About, AboutCreate, AboutUpdate]
	Hero     *Resource[Hero, HeroCreate, HeroUpdate]
	Contact  *Resource[Contact, ContactCreate, ContactUpdate]
	Blog     *Resource[BlogPost, BlogPostCreate, BlogPostUpdate]
	Resume   *Resource[Resume, ResumeCreate, ResumeUpdate]
	Relay    *ContactRelay

	db    *gorm.DB
	cache *responseCache
}

func NewServer(db *gorm.DB, cfg Config, mailer Mailer) *Server {
	rc := newResponseCache(cfg.CacheTTL)

	s := &Server{
		Projects: newResource(db, rc, Resource[Project, ProjectCreate, ProjectUpdate]{
			Name: "projects", Path: "/api/projects", Kind: KindList,
			Label: "Project", NotFound: "Project not found",
		}),
		Skills: newResource(db, rc, Resource[Skill, SkillCreate, SkillUpdate]{
			Name: "skills", Path: "/api/skills", Kind: KindList,
			Label: "Skill", NotFound: "Skill not found",
		}),
		About: newResource(db, rc, Resource[About, AboutCreate, AboutUpdate]{
			Name: "about", Path: "/api/about", Kind: KindSingleton,
			Label: "About content", NotFound: "About content not found",
		}),
		Hero: newResource(db, rc, Resource[Hero, HeroCreate, HeroUpdate]{
			Name: "hero", Path: "/api/hero", Kind: KindSingleton,
			Label: "Hero content", NotFound: "Hero content not found",
		}),
		Contact: newResource(db, rc, Resource[Contact, ContactCreate, ContactUpdate]{
			Name: "contact", Path: "/api/contact", Kind: KindSingleton,
			Label: "Contact information", NotFound: "Contact information not found",
		}),
		Blog: newResource(db, rc, Resource[BlogPost, BlogPostCreate, BlogPostUpdate]{
			Name: "blog", Path: "/api/blog", Kind: KindList,
			Label: "Blog post", NotFound: "Blog post not found",
			Conflict: "Blog post with this slug already exists",
		}),
		Resume: newResource(db, rc, Resource[Resume, ResumeCreate, ResumeUpdate]{
			Name: "resume", Path: "/api/resume", Kind: KindSingleton,
			Label: "Resume content", NotFound: "Resume content not found",
		}),
	}
	s.Relay = NewContactRelay(cfg, mailer, s.Contact.store)
	s.db = db
	s.cache = rc
	return s
}

// Routes returns the API mux with request logging applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", Root)
	mux.HandleFunc("GET /api/health", HealthCheck)

	s.Projects.Register(mux)
	s.Skills.Register(mux)
	s.About.Register(mux)
	s.Hero.Register(mux)
	s.Contact.Register(mux)
	s.Blog.Register(mux)
	s.Resume.Register(mux)

	mux.HandleFunc("POST /api/contact/message", s.Relay.SendMessage)

	return withLogging(mux)
}

func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Portfolio API is running"})
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
