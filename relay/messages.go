// SPDX-License-Identifier: EPL-2.0

package relay

import (
	"encoding/json"
	"fmt"

	"github.com/ik5/audshare/song"
)

// Event names understood by the relay.
const (
	// outbound
	EventSendSong              = "sendSong"
	EventSearchSongAcrossUsers = "searchSongAcrossUsers"
	EventSearchResultsFromUser = "searchResultsFromUser"

	// inbound
	EventReceiveSong   = "receiveSong"
	EventSearchResults = "searchResults"
	EventPerformSearch = "performSearch"
)

// Message is the envelope every frame on the relay connection carries.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewMessage marshals payload into a Message for event.
func NewMessage(event string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s: %w", event, err)
	}

	return Message{Event: event, Data: data}, nil
}

// Decode unmarshals the message data into v.
func (m Message) Decode(v any) error {
	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", m.Event, err)
	}
	return nil
}

type SendSong struct {
	SongData song.Record `json:"songData"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

type ReceiveSong struct {
	SenderID string      `json:"senderId"`
	SongData song.Record `json:"songData"`
}

type SearchResults struct {
	Results []song.Record `json:"results"`
}

type PerformSearch struct {
	SearchTerm  string `json:"searchTerm"`
	RequesterID string `json:"requesterId"`
}

type SearchResultsFromUser struct {
	RequesterID   string        `json:"requesterId"`
	SearchResults []song.Record `json:"searchResults"`
}
