package service

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// RegistrationShape identifies which known envelope the backend used for the
// registration list.
type RegistrationShape int

const (
	ShapeUnknown RegistrationShape = iota
	ShapeArray
	ShapeData
	ShapeCharactersByUserID
	ShapeNoCharacters
)

func (s RegistrationShape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeData:
		return "data"
	case ShapeCharactersByUserID:
		return "charactersByUserId"
	case ShapeNoCharacters:
		return "no_characters"
	default:
		return "unknown"
	}
}

// ParsedRegistrations is the result of sniffing a registration list body.
type ParsedRegistrations struct {
	Shape   RegistrationShape
	Entries []domain.RegisteredCharacterRef
}

// ParseRegistrations accepts every envelope the backend has been observed to
// return. Anything else, including invalid JSON, is ShapeUnknown with no
// entries. Non-object list elements become empty refs so they are counted
// and then skipped like any entry without identifiers.
func ParseRegistrations(body []byte) ParsedRegistrations {
	if !gjson.ValidBytes(body) {
		return ParsedRegistrations{Shape: ShapeUnknown}
	}

	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return ParsedRegistrations{Shape: ShapeArray, Entries: refsFrom(root)}
	}
	if !root.IsObject() {
		return ParsedRegistrations{Shape: ShapeUnknown}
	}

	if data := root.Get("data"); data.IsArray() {
		return ParsedRegistrations{Shape: ShapeData, Entries: refsFrom(data)}
	}
	if list := root.Get("charactersByUserId"); list.IsArray() {
		return ParsedRegistrations{Shape: ShapeCharactersByUserID, Entries: refsFrom(list)}
	}
	if strings.TrimSpace(root.Get("message").String()) == domain.NoCharactersMessage {
		return ParsedRegistrations{Shape: ShapeNoCharacters, Entries: []domain.RegisteredCharacterRef{}}
	}

	return ParsedRegistrations{Shape: ShapeUnknown}
}

func refsFrom(list gjson.Result) []domain.RegisteredCharacterRef {
	refs := make([]domain.RegisteredCharacterRef, 0)
	list.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			refs = append(refs, domain.RegisteredCharacterRef{})
			return true
		}
		refs = append(refs, domain.RegisteredCharacterRef{
			ServerID:      firstString(v, "serverId", "server_id", "server"),
			CharacterID:   firstString(v, "characterId", "character_id"),
			CharacterName: firstString(v, "characterName", "character_name"),
			AdventureName: firstString(v, "adventureName", "adventure_name"),
		})
		return true
	})
	return refs
}

func firstString(v gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := v.Get(p)
		if !r.Exists() || r.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}
