package message

import (
	"fmt"
	"sort"
	"strings"
)

// Paginate returns up to one page of channelID's history, newest first,
// beginning start messages back from the newest. start equal to the
// message count yields the single oldest message.
func (s *Store) Paginate(userID, channelID, start int) (Page, error) {
	if err := s.requireMember(channelID, userID); err != nil {
		return Page{}, err
	}

	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()

	total := len(ch.log)
	if start < 0 || start > total {
		return Page{}, ErrInvalidStart
	}

	page := Page{Messages: []View{}, Start: start, End: -1}
	switch {
	case total == 0:
	case start == total:
		page.Messages = append(page.Messages, ch.log[0].view(userID))
	default:
		stop := start + s.pageSize
		if stop < total {
			page.End = stop
		} else {
			stop = total
		}
		// Position i in the newest-first view is log[total-1-i].
		for i := start; i < stop; i++ {
			page.Messages = append(page.Messages, ch.log[total-1-i].view(userID))
		}
	}
	return page, nil
}

// Search returns every message containing query in the channels userID
// belongs to, newest first.
func (s *Store) Search(userID int, query string) ([]View, error) {
	channelIDs, err := s.dir.ChannelsOf(userID)
	if err != nil {
		return nil, fmt.Errorf("list channels of %d: %w", userID, err)
	}

	out := []View{}
	for _, id := range channelIDs {
		s.mu.RLock()
		ch, ok := s.channels[id]
		s.mu.RUnlock()
		if !ok {
			continue
		}
		ch.mu.Lock()
		for _, m := range ch.log {
			if strings.Contains(m.Text, query) {
				out = append(out, m.view(userID))
			}
		}
		ch.mu.Unlock()
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimeCreated != out[j].TimeCreated {
			return out[i].TimeCreated > out[j].TimeCreated
		}
		return out[i].MessageID > out[j].MessageID
	})
	return out, nil
}

// Count returns the number of messages in channelID.
func (s *Store) Count(channelID int) int {
	s.mu.RLock()
	ch, ok := s.channels[channelID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.log)
}
