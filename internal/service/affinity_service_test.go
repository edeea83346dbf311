package service

import (
	"strings"
	"testing"
	"time"

	"kokoro/internal/domain"
	"kokoro/internal/models"
	"kokoro/internal/repository"
)

func TestComputeDeltaWorkedExample(t *testing.T) {
	// base 2 + hour 1 + "like" 2 + emoji 1
	got := ComputeDelta("I really like you! 😊", 0, false, 14)
	if got != 6 {
		t.Fatalf("delta = %d, want 6", got)
	}
}

func TestComputeDeltaBaseClamps(t *testing.T) {
	// Short text floors at 1 even when length/10 is 0.
	if got := ComputeDelta("yo", 0, false, 3); got != 1 {
		t.Fatalf("short delta = %d, want 1", got)
	}
	// Base caps at 3; 45 runes earn no length bonus.
	text := strings.Repeat("x", 45)
	if got := ComputeDelta(text, 0, false, 3); got != 3 {
		t.Fatalf("45-rune delta = %d, want 3", got)
	}
}

func TestComputeDeltaLengthBonusesStack(t *testing.T) {
	// 60 runes: base 3 + long bonus 2.
	if got := ComputeDelta(strings.Repeat("x", 60), 0, false, 3); got != 5 {
		t.Fatalf("60-rune delta = %d, want 5", got)
	}
	// 120 runes: base 3 + 2 + 3.
	if got := ComputeDelta(strings.Repeat("x", 120), 0, false, 3); got != 8 {
		t.Fatalf("120-rune delta = %d, want 8", got)
	}
}

func TestComputeDeltaConsecutiveBonus(t *testing.T) {
	base := ComputeDelta("hello there", 12, false, 3)
	consec := ComputeDelta("hello there", 12, true, 3)
	if consec-base != 2 {
		t.Fatalf("consecutive bonus = %d, want 2", consec-base)
	}
	// Bonus caps at 5 no matter how many recent messages.
	capped := ComputeDelta("hello there", 100, true, 3)
	if capped-base != 5 {
		t.Fatalf("capped bonus = %d, want 5", capped-base)
	}
}

func TestComputeDeltaHourWindow(t *testing.T) {
	day := ComputeDelta("hello there", 0, false, domain.ActiveHourStart)
	late := ComputeDelta("hello there", 0, false, domain.ActiveHourEnd)
	night := ComputeDelta("hello there", 0, false, 3)
	if day != night+1 || late != night+1 {
		t.Fatalf("hour bonus: day %d late %d night %d", day, late, night)
	}
}

func TestComputeDeltaKeywords(t *testing.T) {
	neutral := ComputeDelta("hello there", 0, false, 3)
	positive := ComputeDelta("love you hello", 0, false, 3)
	if positive-neutral != 2 {
		t.Fatalf("positive bonus = %d, want 2", positive-neutral)
	}
	negative := ComputeDelta("hate mondays!", 0, false, 3)
	plain := ComputeDelta("okay mondays!", 0, false, 3)
	if plain-negative != 1 {
		t.Fatalf("negative penalty = %d, want 1", plain-negative)
	}
}

func TestComputeDeltaQuestionMark(t *testing.T) {
	ascii := ComputeDelta("are you there?", 0, false, 3)
	fullwidth := ComputeDelta("are you there？", 0, false, 3)
	plain := ComputeDelta("are you there!", 0, false, 3)
	if ascii != plain+1 || fullwidth != plain+1 {
		t.Fatalf("question bonus: ascii %d fullwidth %d plain %d", ascii, fullwidth, plain)
	}
}

func TestComputeDeltaEmojiCap(t *testing.T) {
	one := ComputeDelta("hi 😊", 0, false, 3)
	plain := ComputeDelta("hi x", 0, false, 3)
	if one != plain+1 {
		t.Fatalf("single emoji bonus: %d vs %d", one, plain)
	}
	many := ComputeDelta("hi 😊😊💕👍🙌", 0, false, 3)
	if many != plain+3 {
		t.Fatalf("emoji bonus should cap at 3: %d vs %d", many, plain)
	}
}

func TestComputeDeltaClampedToRange(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		recent int
		consec bool
		hour   int
	}{
		{"very negative", strings.Repeat("hate hate hate ", 20), 0, false, 3},
		{"very positive", strings.Repeat("love you 😊 ", 30) + "?", 100, true, 14},
		{"empty", "", 0, false, 0},
		{"huge plain", strings.Repeat("a", 10000), 0, false, 12},
	}
	for _, tc := range cases {
		got := ComputeDelta(tc.text, tc.recent, tc.consec, tc.hour)
		if got < domain.FavorDeltaMin || got > domain.FavorDeltaMax {
			t.Fatalf("%s: delta %d outside [%d, %d]", tc.name, got, domain.FavorDeltaMin, domain.FavorDeltaMax)
		}
	}
}

func TestGetFavorLazilyCreates(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc := newAffinity(db)

	favor, stage, err := svc.GetFavor(p.ID, ch.ID)
	if err != nil {
		t.Fatalf("GetFavor: %v", err)
	}
	if favor != 0 || stage != domain.StageAcquaintance {
		t.Fatalf("favor/stage = %d/%s, want 0/%s", favor, stage, domain.StageAcquaintance)
	}
	rec, err := repository.NewAffinityRepository(db).GetByPair(p.ID, ch.ID)
	if err != nil || rec == nil {
		t.Fatalf("record not created: %v", err)
	}
}

func TestApplyMessageMovesFavor(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc := newAffinity(db)

	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	res, err := svc.ApplyMessage(p.ID, ch.ID, "I really like you! 😊", at)
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if res.PreviousFavor != 0 || res.Delta != 6 || res.NewFavor != 6 {
		t.Fatalf("result = %+v, want prev 0 delta 6 new 6", res)
	}
	favor, _, err := svc.GetFavor(p.ID, ch.ID)
	if err != nil {
		t.Fatalf("GetFavor: %v", err)
	}
	if favor != 6 {
		t.Fatalf("persisted favor = %d, want 6", favor)
	}
}

func TestApplyMessageFavorNeverNegative(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc := newAffinity(db)

	if err := repository.NewAffinityRepository(db).UpdateFavor(p.ID, ch.ID, 2); err != nil {
		t.Fatalf("seed favor: %v", err)
	}
	at := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
	res, err := svc.ApplyMessage(p.ID, ch.ID, strings.Repeat("hate hate hate ", 20), at)
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if res.Delta != domain.FavorDeltaMin {
		t.Fatalf("delta = %d, want %d", res.Delta, domain.FavorDeltaMin)
	}
	if res.NewFavor != 0 {
		t.Fatalf("favor = %d, want floor 0", res.NewFavor)
	}
}

func TestApplyMessageGuestBypass(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	_, ch := seedPair(t, db, u.ID)
	svc := newAffinity(db)

	res, err := svc.ApplyMessage(domain.GuestPersonaID, ch.ID, "I really like you! 😊", time.Now())
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if res.Delta != 0 || res.NewFavor != 0 {
		t.Fatalf("guest result = %+v, want zero delta", res)
	}
	rec, err := repository.NewAffinityRepository(db).GetByPair(domain.GuestPersonaID, ch.ID)
	if err != nil {
		t.Fatalf("GetByPair: %v", err)
	}
	if rec != nil {
		t.Fatalf("guest message created an affinity record")
	}
}

func TestApplyMessageCadence(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	p, ch := seedPair(t, db, u.ID)
	svc := newAffinity(db)
	chats := repository.NewChatRepository(db)

	now := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
	// Three user messages inside the trailing 24h window make the
	// conversation consecutive.
	for i := 0; i < 3; i++ {
		msg := &models.ChatMessage{
			PersonaID:   p.ID,
			CharacterID: ch.ID,
			Role:        domain.RoleUser,
			Content:     "hello",
			CreatedAt:   now.Add(-time.Duration(i+1) * time.Hour),
		}
		if err := chats.Create(msg); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	res, err := svc.ApplyMessage(p.ID, ch.ID, "hello there", now)
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	// base 1, no hour bonus at 03:00, no keywords: only the structure of the
	// delta tells us whether cadence kicked in. 3 recent messages / 5 = 0
	// bonus even when consecutive, so force a bigger window.
	if res.Delta != 1 {
		t.Fatalf("delta = %d, want 1 (consecutive with <5 recent adds 0)", res.Delta)
	}

	// Ten recent messages earn min(5, 10/5) = 2 when consecutive.
	for i := 0; i < 7; i++ {
		msg := &models.ChatMessage{
			PersonaID:   p.ID,
			CharacterID: ch.ID,
			Role:        domain.RoleUser,
			Content:     "hello",
			CreatedAt:   now.Add(-time.Duration(i+5) * time.Minute),
		}
		if err := chats.Create(msg); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	res, err = svc.ApplyMessage(p.ID, ch.ID, "hello there", now)
	if err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	if res.Delta != 3 {
		t.Fatalf("delta = %d, want 3 (base 1 + cadence 2)", res.Delta)
	}
}

func TestStageBreakpoints(t *testing.T) {
	cases := []struct {
		favor int
		want  string
	}{
		{0, domain.StageAcquaintance},
		{99, domain.StageAcquaintance},
		{100, domain.StageFriend},
		{500, domain.StageCrush},
		{1000, domain.StageLover},
		{4999, domain.StageLover},
		{5000, domain.StageMarriage},
	}
	for _, tc := range cases {
		if got := domain.StageFor(tc.favor); got != tc.want {
			t.Fatalf("StageFor(%d) = %s, want %s", tc.favor, got, tc.want)
		}
	}
}
