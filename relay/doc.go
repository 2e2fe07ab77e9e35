// SPDX-License-Identifier: EPL-2.0

// Package relay connects a peer to the song relay server over a websocket.
//
// Every frame is a JSON Message naming an event and carrying its payload.
// A peer sends songs with sendSong and asks others to search with
// searchSongAcrossUsers. The relay delivers receiveSong, searchResults and
// performSearch; the last one is answered with searchResultsFromUser.
//
//	c, err := relay.Dial(ctx, "ws://localhost:8000/ws", relay.NewClientID())
//	peer := relay.NewPeer(store, c, logger)
//	err = c.Run(ctx, peer.Handle)
package relay
