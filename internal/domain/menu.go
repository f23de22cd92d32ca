package domain

import "time"

// Menu is a named container of navigation items.
type Menu struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=80"`
	Slug      string    `json:"slug" validate:"required,slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuItem is one navigation entry. Items nest through ParentID and are
// ordered among their siblings by Order.
type MenuItem struct {
	ID           string            `json:"id"`
	MenuID       string            `json:"menu_id" validate:"required"`
	ParentID     *string           `json:"parent_id"`
	Title        string            `json:"title" validate:"required,max=120"`
	URL          string            `json:"url" validate:"omitempty,url"`
	Target       LinkTarget        `json:"target" validate:"omitempty,oneof=_self _blank"`
	Order        int               `json:"order"`
	Translations map[string]string `json:"translations" validate:"dive,keys,required,endkeys,required"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (m MenuItem) TreeID() string        { return m.ID }
func (m MenuItem) TreeParentID() *string { return m.ParentID }
func (m MenuItem) TreeOrder() int        { return m.Order }

// IsRoot reports whether the item sits at the top level of its menu.
func (m MenuItem) IsRoot() bool {
	return m.ParentID == nil
}

// LocalizedTitle returns the translation for locale, or Title when there
// is none.
func (m MenuItem) LocalizedTitle(locale string) string {
	if locale != "" {
		if t, ok := m.Translations[locale]; ok {
			return CoalesceStr(t, m.Title)
		}
	}
	return m.Title
}
