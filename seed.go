package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// seedFile is the fixture format read by -seed. A list present in the file
// replaces that whole collection; an absent key leaves it alone. Singletons
// present in the file replace the stored row.
type seedFile struct {
	Projects []json.RawMessage `json:"projects"`
	Skills   []json.RawMessage `json:"skills"`
	Blog     []json.RawMessage `json:"blog"`
	About    json.RawMessage   `json:"about"`
	Hero     json.RawMessage   `json:"hero"`
	Contact  json.RawMessage   `json:"contact"`
	Resume   json.RawMessage   `json:"resume"`
}

// seedFromFile loads a fixture through the same payload validation the API
// uses. Everything runs in one transaction: the first invalid entry rolls
// the whole seed back.
func seedFromFile(ctx context.Context, s *Server, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedList[Project, ProjectCreate](ctx, tx, s.Projects.Name, f.Projects); err != nil {
			return err
		}
		if err := seedList[Skill, SkillCreate](ctx, tx, s.Skills.Name, f.Skills); err != nil {
			return err
		}
		if err := seedList[BlogPost, BlogPostCreate](ctx, tx, s.Blog.Name, f.Blog); err != nil {
			return err
		}
		if err := seedSingleton[About, AboutCreate](ctx, tx, s.About.Name, f.About); err != nil {
			return err
		}
		if err := seedSingleton[Hero, HeroCreate](ctx, tx, s.Hero.Name, f.Hero); err != nil {
			return err
		}
		if err := seedSingleton[Contact, ContactCreate](ctx, tx, s.Contact.Name, f.Contact); err != nil {
			return err
		}
		return seedSingleton[Resume, ResumeCreate](ctx, tx, s.Resume.Name, f.Resume)
	})
	if err != nil {
		return err
	}

	for _, name := range []string{s.Projects.Name, s.Skills.Name, s.Blog.Name, s.About.Name, s.Hero.Name, s.Contact.Name, s.Resume.Name} {
		s.cache.invalidate(name)
	}
	return nil
}

func seedList[T any, C createPayload[T]](ctx context.Context, tx *gorm.DB, name string, items []json.RawMessage) error {
	if items == nil {
		return nil
	}
	store := NewStore[T](tx)
	if err := store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for i, raw := range items {
		row, err := decodeSeed[T, C](raw)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		if err := store.Insert(ctx, &row); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	slog.Info("seeded", "resource", name, "count", len(items))
	return nil
}

func seedSingleton[T any, C createPayload[T]](ctx context.Context, tx *gorm.DB, name string, raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	row, err := decodeSeed[T, C](raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := NewStore[T](tx).Replace(ctx, &row); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	slog.Info("seeded", "resource", name)
	return nil
}

func decodeSeed[T any, C createPayload[T]](raw json.RawMessage) (T, error) {
	var in C
	if err := json.Unmarshal(raw, &in); err != nil {
		var zero T
		return zero, err
	}
	if err := validate.Struct(&in); err != nil {
		var zero T
		return zero, describeValidation(err)
	}
	return in.model(), nil
}
