package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Length is the requested story length.
type Length string

// Supported lesson lengths.
const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// DefaultLength is used when a request does not specify a length.
const DefaultLength = LengthMedium

// ParseLength converts user input into a Length. An empty string yields
// DefaultLength.
func ParseLength(s string) (Length, error) {
	switch Length(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultLength, nil
	case LengthShort:
		return LengthShort, nil
	case LengthMedium:
		return LengthMedium, nil
	case LengthLong:
		return LengthLong, nil
	default:
		return "", fmt.Errorf("%w: unknown length %q", ErrInvalidProfile, s)
	}
}

// TadokuLevel is the extensive-reading level. Clients send it either as a
// number (0) or as a label ("L0", "Level 1"), so it is kept as opaque text.
type TadokuLevel string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (l *TadokuLevel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = TadokuLevel(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tadoku level must be a number or string: %w", err)
	}
	*l = TadokuLevel(n.String())
	return nil
}

// TadokuLevelFromInt formats a numeric level.
func TadokuLevelFromInt(n int) TadokuLevel {
	return TadokuLevel(strconv.Itoa(n))
}

// String returns the level as text.
func (l TadokuLevel) String() string {
	return string(l)
}

// DifficultyProfile holds the three leveling axes plus topic and length for a
// single lesson request. It is a value object; nothing mutates it after
// construction.
type DifficultyProfile struct {
	WaniKaniLevel int         `json:"wanikani_level"`
	GenkiChapter  int         `json:"genki_chapter"`
	TadokuLevel   TadokuLevel `json:"tadoku_level"`
	Topic         string      `json:"topic"`
	Length        Length      `json:"length"`
}

// NewDifficultyProfile builds a validated profile. An empty length falls back
// to DefaultLength.
func NewDifficultyProfile(
	waniKaniLevel, genkiChapter int,
	tadokuLevel TadokuLevel,
	topic string,
	length string,
) (DifficultyProfile, error) {
	l, err := ParseLength(length)
	if err != nil {
		return DifficultyProfile{}, err
	}
	p := DifficultyProfile{
		WaniKaniLevel: waniKaniLevel,
		GenkiChapter:  genkiChapter,
		TadokuLevel:   TadokuLevel(strings.TrimSpace(string(tadokuLevel))),
		Topic:         strings.TrimSpace(topic),
		Length:        l,
	}
	if err := p.Validate(); err != nil {
		return DifficultyProfile{}, err
	}
	return p, nil
}

// Validate checks that the profile can be used to request a lesson.
func (p DifficultyProfile) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidProfile)
	}
	if p.WaniKaniLevel < 0 {
		return fmt.Errorf("%w: wanikani level must not be negative", ErrInvalidProfile)
	}
	if p.GenkiChapter < 0 {
		return fmt.Errorf("%w: genki chapter must not be negative", ErrInvalidProfile)
	}
	switch p.Length {
	case LengthShort, LengthMedium, LengthLong:
	default:
		return fmt.Errorf("%w: unknown length %q", ErrInvalidProfile, p.Length)
	}
	return nil
}

// WithDefaults returns a copy with an empty length replaced by DefaultLength.
func (p DifficultyProfile) WithDefaults() DifficultyProfile {
	if p.Length == "" {
		p.Length = DefaultLength
	}
	return p
}
