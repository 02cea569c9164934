package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/underworld-games/destinydeck/internal/deck"
	"github.com/underworld-games/destinydeck/internal/resolve"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client -> Server
	MessageTypeResolveThreshold MessageType = "resolve_threshold"
	MessageTypeResolveOpposed   MessageType = "resolve_opposed"

	// Server -> Client
	MessageTypeResult MessageType = "result"
	MessageTypeError  MessageType = "error"
)

// Message is the base WebSocket message envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// ModifierData is the wire form of a modifier. An empty suit means flat.
type ModifierData struct {
	Name  string  `json:"name"`
	Suit  string  `json:"suit,omitempty"`
	Value float64 `json:"value"`
}

// ThresholdRequestData asks for a PvE resolution
type ThresholdRequestData struct {
	Difficulty float64            `json:"difficulty"`
	Bonuses    map[string]float64 `json:"bonuses"`
	Modifiers  []ModifierData     `json:"modifiers,omitempty"`
}

// OpposedRequestData asks for a PvP resolution
type OpposedRequestData struct {
	ActorBonuses      map[string]float64 `json:"actorBonuses"`
	DefenderBonuses   map[string]float64 `json:"defenderBonuses"`
	ActorModifiers    []ModifierData     `json:"actorModifiers,omitempty"`
	DefenderModifiers []ModifierData     `json:"defenderModifiers,omitempty"`
}

// ScoreData is the wire form of a participant's scoring breakdown
type ScoreData struct {
	Hand     []string `json:"hand"`
	Rank     string   `json:"rank"`
	Tiebreak int      `json:"tiebreak"`
	Base     float64  `json:"base"`
	Suit     float64  `json:"suit"`
	Modifier float64  `json:"modifier"`
	Total    float64  `json:"total"`
}

// ResultData is the wire form of a resolution result
type ResultData struct {
	Mode       string     `json:"mode"`
	Actor      ScoreData  `json:"actor"`
	Defender   *ScoreData `json:"defender,omitempty"`
	Difficulty float64    `json:"difficulty,omitempty"`
	Margin     float64    `json:"margin"`
	Success    bool       `json:"success"`
	Degree     string     `json:"degree,omitempty"`
	ActorWins  bool       `json:"actorWins"`
}

// ErrorData reports a failed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parseBonuses converts a suit-name map into a bonus vector
func parseBonuses(m map[string]float64) (resolve.SuitBonuses, error) {
	var bonuses resolve.SuitBonuses
	for name, value := range m {
		suit, err := deck.ParseSuit(name)
		if err != nil {
			return bonuses, err
		}
		bonuses[suit] = value
	}
	return bonuses, nil
}

// parseModifiers converts wire modifiers into engine modifiers
func parseModifiers(data []ModifierData) ([]resolve.Modifier, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mods := make([]resolve.Modifier, 0, len(data))
	for _, d := range data {
		if d.Suit == "" {
			mods = append(mods, resolve.Flat(d.Name, d.Value))
			continue
		}
		suit, err := deck.ParseSuit(d.Suit)
		if err != nil {
			return nil, fmt.Errorf("modifier %q: %w", d.Name, err)
		}
		mods = append(mods, resolve.PerSuit(d.Name, suit, d.Value))
	}
	return mods, nil
}

// newScoreData converts a score breakdown to its wire form
func newScoreData(s resolve.Score) ScoreData {
	hand := make([]string, len(s.Hand))
	for i, c := range s.Hand {
		hand[i] = c.String()
	}
	return ScoreData{
		Hand:     hand,
		Rank:     s.Rank.String(),
		Tiebreak: s.Tiebreak,
		Base:     s.Base,
		Suit:     s.Suit,
		Modifier: s.Modifier,
		Total:    s.Total,
	}
}

// newResultData converts a resolution result to its wire form
func newResultData(res *resolve.Result) ResultData {
	data := ResultData{
		Actor:     newScoreData(res.Actor),
		Margin:    res.Margin,
		Success:   res.Success,
		ActorWins: res.ActorWins,
	}

	switch res.Mode {
	case resolve.ThresholdMode:
		data.Mode = "threshold"
		data.Difficulty = res.Difficulty
		data.Degree = res.Degree.String()
	case resolve.OpposedMode:
		data.Mode = "opposed"
		if res.Defender != nil {
			defender := newScoreData(*res.Defender)
			data.Defender = &defender
		}
	}

	return data
}
