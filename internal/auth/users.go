package auth

import (
	"robotdemo/internal/models"
)

// Directory is the read-only user set loaded at startup.
type Directory struct {
	order   []string
	byID    map[string]models.User
	byEmail map[string]string
}

// NewDirectory indexes users by id and email. Later duplicates of either
// key are dropped.
func NewDirectory(users []models.User) *Directory {
	d := &Directory{
		byID:    make(map[string]models.User, len(users)),
		byEmail: make(map[string]string, len(users)),
	}
	for _, u := range users {
		if _, dup := d.byID[u.ID]; dup {
			continue
		}
		if _, dup := d.byEmail[u.Email]; dup {
			continue
		}
		d.order = append(d.order, u.ID)
		d.byID[u.ID] = u
		d.byEmail[u.Email] = u.ID
	}
	return d
}

func DemoUsers() []models.User {
	return []models.User{
		{ID: "user-1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin},
		{ID: "user-2", Name: "Normal User", Email: "user@example.com", Role: models.RoleUser},
	}
}

func (d *Directory) ByID(id string) (models.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// ByEmail matches the address exactly.
func (d *Directory) ByEmail(email string) (models.User, bool) {
	id, ok := d.byEmail[email]
	if !ok {
		return models.User{}, false
	}
	return d.byID[id], true
}

func (d *Directory) Exists(id string) bool {
	_, ok := d.byID[id]
	return ok
}

func (d *Directory) List() []models.User {
	out := make([]models.User, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}
