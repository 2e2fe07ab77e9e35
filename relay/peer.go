// SPDX-License-Identifier: EPL-2.0

package relay

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ik5/audshare/song"
)

// Emitter sends one event to the relay. *Client implements it.
type Emitter interface {
	Emit(event string, payload any) error
}

// Peer is the local side of the song exchange: it stores songs sent to it,
// answers other peers' searches from its store and hands search results to
// the application.
type Peer struct {
	store  song.Store
	out    Emitter
	logger *slog.Logger

	// OnReceive is called after an inbound song was handled, whether or not
	// saving it succeeded.
	OnReceive func(ReceiveSong)
	// OnResults gets the songs other peers found for our last search.
	OnResults func([]song.Record)
}

func NewPeer(store song.Store, out Emitter, logger *slog.Logger) *Peer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Peer{store: store, out: out, logger: logger}
}

// SendSong asks the relay to deliver r to other peers.
func (p *Peer) SendSong(r song.Record) error {
	r.FileName = strings.TrimSpace(r.FileName)
	if err := r.Validate(); err != nil {
		return err
	}

	return p.out.Emit(EventSendSong, SendSong{SongData: r})
}

// Search asks every other peer for songs matching term. It reports whether
// a request was sent; blank terms are not.
func (p *Peer) Search(term string) (bool, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return false, nil
	}

	if err := p.out.Emit(EventSearchSongAcrossUsers, SearchRequest{Term: term}); err != nil {
		return false, err
	}
	return true, nil
}

// Handle dispatches one inbound message. It never fails: problems are
// logged, matching how the relay treats transport errors as non-fatal.
func (p *Peer) Handle(ctx context.Context, msg Message) {
	switch msg.Event {
	case EventReceiveSong:
		var in ReceiveSong
		if err := msg.Decode(&in); err != nil {
			p.logger.Warn("bad relay payload", "event", msg.Event, "err", err)
			return
		}
		p.receive(ctx, in)

	case EventPerformSearch:
		var in PerformSearch
		if err := msg.Decode(&in); err != nil {
			p.logger.Warn("bad relay payload", "event", msg.Event, "err", err)
			return
		}
		p.answer(ctx, in)

	case EventSearchResults:
		var in SearchResults
		if err := msg.Decode(&in); err != nil {
			p.logger.Warn("bad relay payload", "event", msg.Event, "err", err)
			return
		}
		if in.Results == nil {
			in.Results = []song.Record{}
		}
		p.logger.Info("search results", "count", len(in.Results))
		if p.OnResults != nil {
			p.OnResults(in.Results)
		}

	default:
		p.logger.Debug("ignoring relay event", "event", msg.Event)
	}
}

func (p *Peer) receive(ctx context.Context, in ReceiveSong) {
	p.logger.Info("received song", "sender", in.SenderID, "name", in.SongData.FileName)

	if _, err := p.store.Save(ctx, in.SongData); err != nil {
		p.logger.Error("store received song", "sender", in.SenderID, "err", err)
	}
	if p.OnReceive != nil {
		p.OnReceive(in)
	}
}

func (p *Peer) answer(ctx context.Context, in PerformSearch) {
	found, err := song.Search(ctx, p.store, in.SearchTerm)
	if err != nil {
		p.logger.Error("search for peer", "requester", in.RequesterID, "err", err)
		return
	}

	reply := SearchResultsFromUser{RequesterID: in.RequesterID, SearchResults: found}
	if err := p.out.Emit(EventSearchResultsFromUser, reply); err != nil {
		p.logger.Warn("reply to search", "requester", in.RequesterID, "err", err)
	}
}
