package layout

import (
	"github.com/a-h/templ"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// FlashMessage is a one-shot notice shown on the next page
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData is shared by every page
type PageData struct {
	Title       string
	User        *model.Identity
	Flash       *FlashMessage
	ActiveRooms []model.Presence
}

// RoomURL links to the read-only room page
func RoomURL(id model.RoomID) templ.SafeURL {
	return templ.URL("/rooms/" + string(id))
}
