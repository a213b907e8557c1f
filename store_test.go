package main

import (
	"context"
	"errors"
	"testing"
)

func TestStoreCRUD(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[Skill](db)
	ctx := context.Background()

	skill := Skill{Category: "iOS Development", Icon: "📱", SkillName: "Swift", Level: 95}
	if err := store.Insert(ctx, &skill); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if skill.ID == 0 {
		t.Fatal("Skill ID should be set after insert")
	}

	got, err := store.GetByID(ctx, skill.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != skill {
		t.Errorf("Expected %+v, got %+v", skill, got)
	}

	err = store.UpdateFields(ctx, &got, func(s *Skill) { s.Level = 80 })
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}
	reread, _ := store.GetByID(ctx, skill.ID)
	if reread.Level != 80 || reread.SkillName != "Swift" {
		t.Errorf("Unexpected row after update: %+v", reread)
	}

	deleted, err := store.DeleteByID(ctx, skill.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByID = %v, %v; want true, nil", deleted, err)
	}
	deleted, err = store.DeleteByID(ctx, skill.ID)
	if err != nil || deleted {
		t.Fatalf("second DeleteByID = %v, %v; want false, nil", deleted, err)
	}

	if _, err := store.GetByID(ctx, skill.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreListOffsetLimit(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[Skill](db)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		if err := store.Insert(ctx, &Skill{Category: "c", Icon: "i", SkillName: name, Level: 1}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	tests := []struct {
		offset, limit int
		want          []string
	}{
		{0, 100, []string{"a", "b", "c", "d", "e"}},
		{0, 2, []string{"a", "b"}},
		{3, 2, []string{"d", "e"}},
		{5, 2, []string{}},
	}
	for _, tt := range tests {
		rows, err := store.List(ctx, tt.offset, tt.limit)
		if err != nil {
			t.Fatalf("List(%d, %d) failed: %v", tt.offset, tt.limit, err)
		}
		if len(rows) != len(tt.want) {
			t.Fatalf("List(%d, %d) returned %d rows, want %d", tt.offset, tt.limit, len(rows), len(tt.want))
		}
		for i, row := range rows {
			if row.SkillName != tt.want[i] {
				t.Errorf("List(%d, %d)[%d] = %q, want %q", tt.offset, tt.limit, i, row.SkillName, tt.want[i])
			}
		}
	}
}

func TestStoreReplaceKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[Hero](db)
	ctx := context.Background()

	if _, err := store.First(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on empty table, got %v", err)
	}

	for _, name := range []string{"first", "second"} {
		if err := store.Replace(ctx, &Hero{Name: name, Subtitle: "s", Description: "d"}); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
	}

	var count int64
	db.Model(&Hero{}).Count(&count)
	if count != 1 {
		t.Fatalf("Expected 1 hero row, got %d", count)
	}
	hero, err := store.First(ctx)
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if hero.Name != "second" {
		t.Errorf("Expected the second hero to survive, got %q", hero.Name)
	}
}

func TestStoreFirstPrefersNewestRow(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[Hero](db)
	ctx := context.Background()

	// Two rows can only appear through a race or a manual insert.
	store.Insert(ctx, &Hero{Name: "old", Subtitle: "s", Description: "d"})
	store.Insert(ctx, &Hero{Name: "new", Subtitle: "s", Description: "d"})

	hero, err := store.First(ctx)
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if hero.Name != "new" {
		t.Errorf("Expected newest row, got %q", hero.Name)
	}

	if err := store.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if _, err := store.First(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after DeleteAll, got %v", err)
	}
}

func TestStoreDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[BlogPost](db)
	ctx := context.Background()

	first := BlogPost{Title: "One", Slug: "hello", Content: "x"}
	if err := store.Insert(ctx, &first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := store.Insert(ctx, &BlogPost{Title: "Two", Slug: "hello", Content: "y"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}

	second := BlogPost{Title: "Two", Slug: "other", Content: "y"}
	if err := store.Insert(ctx, &second); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err = store.UpdateFields(ctx, &second, func(p *BlogPost) { p.Slug = "hello" })
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate on update, got %v", err)
	}
}

func TestStoreJSONColumnsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[Resume](db)
	ctx := context.Background()

	resume := Resume{
		Experience: []Record{{
			"title":       []byte(`"Senior Software Engineer"`),
			"company":     []byte(`"Paytm"`),
			"description": []byte(`["Home team","Search"]`),
			"location":    []byte(`{"city":"Noida","remote":false}`),
		}},
		Education:       []Record{{"degree": []byte(`"B.Tech"`), "year": []byte(`2017`)}},
		Certifications:  []string{"AWS"},
		TechnicalSkills: map[string][]string{"iOS": {"Swift", "UIKit"}},
	}
	if err := store.Insert(ctx, &resume); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, resume.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	exp := got.Experience[0]
	if string(exp["description"]) != `["Home team","Search"]` {
		t.Errorf("experience description = %s", exp["description"])
	}
	if string(exp["location"]) != `{"city":"Noida","remote":false}` {
		t.Errorf("experience location = %s", exp["location"])
	}
	if _, ok := exp["period"]; ok {
		t.Error("absent period came back as a key")
	}
	if string(got.Education[0]["year"]) != `2017` {
		t.Errorf("education year = %s", got.Education[0]["year"])
	}
	if len(got.TechnicalSkills["iOS"]) != 2 || got.Certifications[0] != "AWS" {
		t.Errorf("Unexpected resume: %+v", got)
	}
}

func TestStoreNullListColumns(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore[About](db)
	ctx := context.Background()

	about := About{Name: "n", Title: "t", Description: "d", Highlights: []Record{{"label": []byte(`"x"`)}}}
	if err := store.Insert(ctx, &about); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.UpdateFields(ctx, &about, func(a *About) { a.Highlights = nil }); err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	var isNull bool
	db.Raw("SELECT highlights IS NULL FROM about WHERE id = ?", about.ID).Scan(&isNull)
	if !isNull {
		t.Error("Expected cleared highlights to be stored as NULL")
	}
}
