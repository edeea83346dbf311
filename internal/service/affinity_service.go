package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"kokoro/internal/domain"
	"kokoro/internal/repository"
)

// Sentiment lexicons for favor scoring. Matched case-insensitively as
// substrings; each positive hit adds 2, each negative hit subtracts 1.
var (
	positiveKeywords = []string{
		"love", "like", "happy", "cute", "sweet", "miss you", "thank",
		"사랑", "좋아", "고마워", "보고싶", "행복", "귀여워", "최고",
	}
	negativeKeywords = []string{
		"hate", "boring", "annoying", "stupid", "ugly", "shut up",
		"싫어", "미워", "짜증", "바보", "꺼져", "재미없",
	}
)

// emojiRanges are the three rune ranges that earn the emoji bonus:
// emoticons, heart symbols, hand gestures.
var emojiRanges = [3][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F493, 0x1F49F}, // hearts
	{0x1F44A, 0x1F450}, // hand gestures
}

// FavorResult reports one scoring application.
type FavorResult struct {
	PreviousFavor int    `json:"previous_favor"`
	NewFavor      int    `json:"new_favor"`
	Delta         int    `json:"delta"`
	Stage         string `json:"stage"`
}

// AffinityService maintains the favor score between a persona and a
// character. Scoring always consumes the raw message text; redaction happens
// downstream on the stored copy.
type AffinityService struct {
	affinities *repository.AffinityRepository
	chats      *repository.ChatRepository
}

func NewAffinityService(affinities *repository.AffinityRepository, chats *repository.ChatRepository) *AffinityService {
	return &AffinityService{affinities: affinities, chats: chats}
}

// GetFavor returns the pair's favor score and stage, creating the record at
// favor 0 on first lookup.
func (s *AffinityService) GetFavor(personaID, characterID uint) (int, string, error) {
	if personaID == domain.GuestPersonaID || characterID == 0 {
		return 0, "", ErrInvalidInput
	}
	rec, err := s.affinities.GetOrCreate(personaID, characterID)
	if err != nil {
		return 0, "", err
	}
	return rec.Favor, domain.StageFor(rec.Favor), nil
}

// ApplyMessage scores a raw user message and moves the pair's favor by the
// resulting delta. Guest personas bypass scoring with a zero delta. The
// caller must invoke this exactly once per logical message.
func (s *AffinityService) ApplyMessage(personaID, characterID uint, rawText string, now time.Time) (*FavorResult, error) {
	if characterID == 0 {
		return nil, ErrInvalidInput
	}
	if personaID == domain.GuestPersonaID {
		return &FavorResult{Stage: domain.StageFor(0)}, nil
	}
	recentCount, consecutive, err := s.cadence(personaID, characterID, now)
	if err != nil {
		return nil, err
	}
	rec, err := s.affinities.GetOrCreate(personaID, characterID)
	if err != nil {
		return nil, err
	}
	delta := ComputeDelta(rawText, recentCount, consecutive, now.Hour())
	newFavor := rec.Favor + delta
	if newFavor < 0 {
		newFavor = 0
	}
	if err := s.affinities.UpdateFavor(personaID, characterID, newFavor); err != nil {
		return nil, err
	}
	return &FavorResult{
		PreviousFavor: rec.Favor,
		NewFavor:      newFavor,
		Delta:         delta,
		Stage:         domain.StageFor(newFavor),
	}, nil
}

// cadence inspects the newest user-authored messages for the pair and counts
// how many fall inside the trailing window. The conversation is consecutive
// when that count reaches the threshold.
func (s *AffinityService) cadence(personaID, characterID uint, now time.Time) (int, bool, error) {
	times, err := s.chats.RecentUserMessageTimes(personaID, characterID, domain.CadenceMessageWindow)
	if err != nil {
		return 0, false, err
	}
	cutoff := now.Add(-domain.CadenceWindowHours * time.Hour)
	count := 0
	for _, t := range times {
		if t.After(cutoff) {
			count++
		}
	}
	return count, count >= domain.CadenceMinMessages, nil
}

// ComputeDelta derives the favor delta for one message. Pure and
// deterministic; length is measured in runes.
func ComputeDelta(text string, recentMessageCount int, isConsecutive bool, hourOfDay int) int {
	length := utf8.RuneCountInString(text)

	base := length / 10
	if base < 1 {
		base = 1
	}
	if base > 3 {
		base = 3
	}
	delta := base

	if length > 50 {
		delta += 2
	}
	if length > 100 {
		delta += 3
	}

	if isConsecutive {
		bonus := recentMessageCount / 5
		if bonus > domain.ConsecutiveBonusMax {
			bonus = domain.ConsecutiveBonusMax
		}
		delta += bonus
	}

	if hourOfDay >= domain.ActiveHourStart && hourOfDay <= domain.ActiveHourEnd {
		delta++
	}

	lower := strings.ToLower(text)
	for _, kw := range positiveKeywords {
		delta += strings.Count(lower, kw) * domain.PositiveKeywordPoints
	}
	for _, kw := range negativeKeywords {
		delta += strings.Count(lower, kw) * domain.NegativeKeywordPoints
	}

	if strings.ContainsRune(text, '?') || strings.ContainsRune(text, '？') {
		delta++
	}

	emoji := 0
	for _, r := range text {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				emoji++
				break
			}
		}
	}
	if emoji > domain.EmojiBonusMax {
		emoji = domain.EmojiBonusMax
	}
	delta += emoji

	if delta < domain.FavorDeltaMin {
		delta = domain.FavorDeltaMin
	}
	if delta > domain.FavorDeltaMax {
		delta = domain.FavorDeltaMax
	}
	return delta
}
