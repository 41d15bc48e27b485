package domain

import "strings"

const (
	// UnknownValue is shown wherever the upstream record had no value.
	UnknownValue = "정보 없음"

	// PlaceholderImageURL is rendered when no item image could be resolved.
	PlaceholderImageURL = "/static/images/item-placeholder.png"

	// NoCharactersMessage is the backend sentinel for an empty roster.
	NoCharactersMessage = "등록된 캐릭터가 없습니다."
)

// Servers maps Neople server ids to their display names.
var Servers = map[string]string{
	"cain":     "카인",
	"diregie":  "디레지에",
	"siroco":   "시로코",
	"prey":     "프레이",
	"casillas": "카시야스",
	"hilder":   "힐더",
	"anton":    "안톤",
	"bakal":    "바칼",
}

// RegisteredCharacterRef is the minimal identity of a roster entry.
type RegisteredCharacterRef struct {
	ServerID      string `json:"serverId"      bson:"server_id"`
	CharacterID   string `json:"characterId"   bson:"character_id"`
	CharacterName string `json:"characterName" bson:"character_name"`
	AdventureName string `json:"adventureName" bson:"adventure_name"`
}

// Resolvable reports whether the entry carries both identifiers needed for a
// detail lookup.
func (r RegisteredCharacterRef) Resolvable() bool {
	return strings.TrimSpace(r.ServerID) != "" && strings.TrimSpace(r.CharacterID) != ""
}

// CharacterDetail is the normalized character record rendered by the UI.
type CharacterDetail struct {
	ServerID      string `json:"serverId"`
	CharacterID   string `json:"characterId"`
	CharacterName string `json:"characterName"`
	Level         int    `json:"level"`
	JobID         string `json:"jobId"`
	JobGrowID     string `json:"jobGrowId"`
	JobName       string `json:"jobName"`
	JobGrowName   string `json:"jobGrowName"`
	Fame          int    `json:"fame"`
	ImageURL      string `json:"imageUrl"`
	AdventureName string `json:"adventureName"`
}

// DegradedDetail builds the record shown when the detail fetch for ref failed.
func DegradedDetail(ref RegisteredCharacterRef) CharacterDetail {
	return CharacterDetail{
		ServerID:      ref.ServerID,
		CharacterID:   ref.CharacterID,
		CharacterName: orUnknown(ref.CharacterName),
		JobName:       UnknownValue,
		JobGrowName:   UnknownValue,
		AdventureName: orUnknown(ref.AdventureName),
	}
}

// WithFallbacks fills blank fields from ref, then from the sentinels.
func (d CharacterDetail) WithFallbacks(ref RegisteredCharacterRef) CharacterDetail {
	if d.ServerID == "" {
		d.ServerID = ref.ServerID
	}
	if d.CharacterID == "" {
		d.CharacterID = ref.CharacterID
	}
	if d.CharacterName == "" {
		d.CharacterName = ref.CharacterName
	}
	if d.AdventureName == "" {
		d.AdventureName = ref.AdventureName
	}
	d.CharacterName = orUnknown(d.CharacterName)
	d.JobName = orUnknown(d.JobName)
	d.JobGrowName = orUnknown(d.JobGrowName)
	d.AdventureName = orUnknown(d.AdventureName)
	return d
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownValue
	}
	return s
}

// EquipmentItem is one equipped slot.
type EquipmentItem struct {
	SlotID     string `json:"slotId"`
	SlotName   string `json:"slotName"`
	ItemID     string `json:"itemId"`
	ItemName   string `json:"itemName"`
	ItemRarity string `json:"itemRarity"`
	Reinforce  int    `json:"reinforce"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// CharacterEquipment is the detail view payload: basic info plus equipment.
type CharacterEquipment struct {
	Character CharacterDetail `json:"character"`
	Equipment []EquipmentItem `json:"equipment"`
}

// Item is the subset of the Neople item record the service needs.
type Item struct {
	ItemID     string `json:"itemId"`
	ItemName   string `json:"itemName"`
	ItemRarity string `json:"itemRarity"`
}
