package model

import "time"

// Partial updates. A nil field is left untouched.

type UserPatch struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

type DevicePatch struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	Description    *string `json:"description"`
	Reference      *string `json:"reference"`
	LinkOfResource *string `json:"linkOfResource"`
}

type SymptomPatch struct {
	Name         *string `json:"name" form:"name"`
	Description  *string `json:"description" form:"description"`
	ResourceLink *string `json:"resourceLink" form:"resourceLink"`
	Image        *string `json:"-" form:"-"`
}

type CategoryPatch struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	Image       *string `json:"-" form:"-"`
}

type QuestionPatch struct {
	Reply     *string    `json:"reply"`
	Status    *string    `json:"status"`
	RepliedAt *time.Time `json:"-"`
	// Reopen clears the reply time, and the reply unless one is given
	Reopen bool `json:"-"`
}

type TipPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Icon     *string `json:"icon"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

// TipInput describes a tip before defaults are applied
type TipInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Icon     *string `json:"icon"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

// Columns maps set fields onto their column names
func (p UserPatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "email", p.Email)
	setString(m, "name", p.Name)
	setString(m, "role", p.Role)
	return m
}

func (p DevicePatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "name", p.Name)
	setString(m, "category", p.Category)
	setString(m, "description", p.Description)
	setString(m, "reference", p.Reference)
	setString(m, "link_of_resource", p.LinkOfResource)
	return m
}

func (p SymptomPatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "name", p.Name)
	setString(m, "description", p.Description)
	setString(m, "resource_link", p.ResourceLink)
	setString(m, "image", p.Image)
	return m
}

func (p CategoryPatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "name", p.Name)
	setString(m, "description", p.Description)
	setString(m, "image", p.Image)
	return m
}

func (p QuestionPatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "reply", p.Reply)
	setString(m, "status", p.Status)
	if p.RepliedAt != nil {
		m["replied_at"] = *p.RepliedAt
	}
	if p.Reopen {
		m["replied_at"] = nil
		if p.Reply == nil {
			m["reply"] = nil
		}
	}
	return m
}

func (p TipPatch) Columns() map[string]any {
	m := map[string]any{}
	setString(m, "title", p.Title)
	setString(m, "content", p.Content)
	setString(m, "icon", p.Icon)
	if p.Priority != nil {
		m["priority"] = *p.Priority
	}
	if p.IsActive != nil {
		m["is_active"] = *p.IsActive
	}
	return m
}

func setString(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}
