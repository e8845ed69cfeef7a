package interop

// ChannelType distinguishes user-selectable system channels from app channels.
type ChannelType string

const (
	ChannelTypeUser ChannelType = "user"
	ChannelTypeApp  ChannelType = "app"
)

// DisplayMetadata is the visual hint attached to a system channel.
type DisplayMetadata struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Glyph string `json:"glyph"`
}

// Channel is a named broadcast topic.
type Channel struct {
	ID              string          `json:"id"`
	Type            ChannelType     `json:"type"`
	DisplayMetadata DisplayMetadata `json:"displayMetadata"`
}

// Title returns the display name, falling back to the id.
func (c Channel) Title() string {
	if c.DisplayMetadata.Name != "" {
		return c.DisplayMetadata.Name
	}
	return c.ID
}

// DefaultSystemChannels returns the recommended set of user channels.
func DefaultSystemChannels() []Channel {
	return []Channel{
		{ID: "red", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 1", Color: "#FF0000", Glyph: "1"}},
		{ID: "orange", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 2", Color: "#FF8000", Glyph: "2"}},
		{ID: "yellow", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 3", Color: "#FFFF00", Glyph: "3"}},
		{ID: "green", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 4", Color: "#00FF00", Glyph: "4"}},
		{ID: "blue", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 5", Color: "#0000FF", Glyph: "5"}},
		{ID: "purple", Type: ChannelTypeUser, DisplayMetadata: DisplayMetadata{Name: "Channel 6", Color: "#FF00FF", Glyph: "6"}},
	}
}
