package discord

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/json"
)

// IconType is the image format of an Icon.
type IconType int

const (
	IconTypeUnknown IconType = iota - 1
	IconTypeJPEG
	IconTypePNG
	IconTypeWEBP
	IconTypeGIF
)

var iconTypeMIME = map[IconType]string{
	IconTypeJPEG: "image/jpeg",
	IconTypePNG:  "image/png",
	IconTypeWEBP: "image/webp",
	IconTypeGIF:  "image/gif",
}

var iconTypeNames = map[IconType]string{
	IconTypeUnknown: "UNKNOWN",
	IconTypeJPEG:    "JPEG",
	IconTypePNG:     "PNG",
	IconTypeWEBP:    "WEBP",
	IconTypeGIF:     "GIF",
}

// IconTypeFromKey maps a MIME type to its IconType.
func IconTypeFromKey(mime string) IconType {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for t, m := range iconTypeMIME {
		if m == mime {
			return t
		}
	}
	return IconTypeUnknown
}

// IconTypeFromExtension maps a file extension (with or without the dot) to its IconType.
func IconTypeFromExtension(ext string) IconType {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return IconTypeJPEG
	case "png":
		return IconTypePNG
	case "webp":
		return IconTypeWEBP
	case "gif":
		return IconTypeGIF
	}
	return IconTypeUnknown
}

// Key returns the MIME type, or "" for IconTypeUnknown.
func (t IconType) Key() string { return iconTypeMIME[t] }

// MIMEType returns the MIME type used in the data URI. Unknown formats are sent as JPEG.
func (t IconType) MIMEType() string {
	if m, ok := iconTypeMIME[t]; ok {
		return m
	}
	return iconTypeMIME[IconTypeJPEG]
}

func (t IconType) String() string { return nameOf(iconTypeNames, t) }

func (t IconType) disgo() disgodiscord.IconType { return disgodiscord.IconType(t.MIMEType()) }

// Icon is an image encoded as a data URI for upload (avatars, role icons, event covers).
type Icon struct {
	icon *disgodiscord.Icon
}

// IconFrom encodes data as an icon of the given type.
func IconFrom(data []byte, typ IconType) (*Icon, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("icon data may not be empty")
	}
	return &Icon{icon: disgodiscord.NewIconRaw(typ.disgo(), data)}, nil
}

// IconFromReader reads r to the end and encodes it.
func IconFromReader(r io.Reader, typ IconType) (*Icon, error) {
	icon, err := disgodiscord.NewIcon(typ.disgo(), r)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon: %w", err)
	}
	if len(icon.Data) == 0 {
		return nil, fmt.Errorf("icon data may not be empty")
	}
	return &Icon{icon: icon}, nil
}

// IconFromFile reads the file at path, taking the type from its extension.
func IconFromFile(path string) (*Icon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon file %s: %w", path, err)
	}
	return IconFrom(data, IconTypeFromExtension(filepath.Ext(path)))
}

// Encoding returns the data URI.
func (i Icon) Encoding() string {
	if i.icon == nil {
		return ""
	}
	return i.icon.String()
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Encoding())
}
