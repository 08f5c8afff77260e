package message

// ReactThumbsUp is the only reaction kind currently accepted.
const ReactThumbsUp = 1

var validReacts = map[int]bool{ReactThumbsUp: true}

// Message is one entry in a channel log.
type Message struct {
	ID          int
	AuthorID    int
	Text        string
	TimeCreated int64
	Pinned      bool
	Reacts      []*Reaction
}

// Reaction is the set of users holding one reaction kind on a message.
// AuthorReacted is set when the message author reacts and cleared when
// the author unreacts; other users never change it.
type Reaction struct {
	Kind          int
	UserIDs       []int
	AuthorReacted bool
}

func (r *Reaction) has(userID int) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (m *Message) reaction(kind int) (int, *Reaction) {
	for i, r := range m.Reacts {
		if r.Kind == kind {
			return i, r
		}
	}
	return -1, nil
}

// ReactView is a reaction as seen by one caller.
type ReactView struct {
	ReactID           int   `json:"react_id"`
	UserIDs           []int `json:"u_ids"`
	IsThisUserReacted bool  `json:"is_this_user_reacted"`
	AuthorReacted     bool  `json:"author_reacted"`
}

// View is a message rendered for one caller.
type View struct {
	MessageID   int         `json:"message_id"`
	UserID      int         `json:"u_id"`
	Message     string      `json:"message"`
	TimeCreated int64       `json:"time_created"`
	Reacts      []ReactView `json:"reacts"`
	IsPinned    bool        `json:"is_pinned"`
}

// Page is one window of a channel's history, newest first. End is -1
// when no older messages remain.
type Page struct {
	Messages []View `json:"messages"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// StandupStatus reports a channel's aggregation window. TimeFinish is nil
// when no standup is running.
type StandupStatus struct {
	IsActive   bool   `json:"is_active"`
	TimeFinish *int64 `json:"time_finish"`
}

func (m *Message) view(callerID int) View {
	v := View{
		MessageID:   m.ID,
		UserID:      m.AuthorID,
		Message:     m.Text,
		TimeCreated: m.TimeCreated,
		IsPinned:    m.Pinned,
		Reacts:      make([]ReactView, 0, len(m.Reacts)),
	}
	for _, r := range m.Reacts {
		ids := make([]int, len(r.UserIDs))
		copy(ids, r.UserIDs)
		v.Reacts = append(v.Reacts, ReactView{
			ReactID:           r.Kind,
			UserIDs:           ids,
			IsThisUserReacted: r.has(callerID),
			AuthorReacted:     r.AuthorReacted,
		})
	}
	return v
}
