package events

import "github.com/mrlokans/readvoyage/internal/entities"

type BookAction string

const (
	ActionAdd    BookAction = "add"
	ActionUpdate BookAction = "update"
	ActionDelete BookAction = "delete"
	ActionClear  BookAction = "clear"
)

// BooksChange is the payload of BooksUpdated. Book is nil for ActionClear.
type BooksChange struct {
	Action BookAction     `json:"action"`
	Book   *entities.Book `json:"book,omitempty"`
}

// SettingsChange is the payload of SettingsUpdated and carries the full record.
type SettingsChange struct {
	Settings entities.Settings `json:"settings"`
}

type Imported struct{}
