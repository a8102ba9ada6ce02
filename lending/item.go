package lending

import (
	"strings"

	"github.com/google/uuid"
)

// Item represents a loanable catalog item.
//
// Available is false exactly while an active loan references the item.
// While its properties are exported, it should only be constructed with
// the supplied factory method BuildItem.
type Item struct {
	ID        uuid.UUID
	Title     string
	Creator   string
	Available bool
}

// BuildItem is a factory method for Item. New items start out available.
//
// Returns an error if the identifier is the nil uuid or title/creator are blank.
func BuildItem(id uuid.UUID, title string, creator string) (Item, error) {
	if id == uuid.Nil {
		return Item{}, ErrNilID
	}

	if strings.TrimSpace(title) == "" {
		return Item{}, ErrEmptyItemTitle
	}

	if strings.TrimSpace(creator) == "" {
		return Item{}, ErrEmptyItemCreator
	}

	return Item{
		ID:        id,
		Title:     title,
		Creator:   creator,
		Available: true,
	}, nil
}
