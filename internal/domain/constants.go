package domain

// Heart transaction kinds. Debit kinds spend hearts, everything else credits.
const (
	TxKindPurchase    = "PURCHASE"
	TxKindChatSpend   = "CHAT_SPEND"
	TxKindDailyBonus  = "DAILY_BONUS"
	TxKindAdminAdjust = "ADMIN_ADJUST"
	TxKindRefund      = "REFUND"
	TxKindRefresh     = "REFRESH"
)

// IsDebitKind reports whether the kind spends hearts (amount is deducted).
func IsDebitKind(kind string) bool {
	return kind == TxKindChatSpend || kind == TxKindRefresh
}

// DefaultHeartBalance is the implicit balance of a user with no transactions.
const DefaultHeartBalance = 100

// GuestPersonaID is the sentinel persona id for unauthenticated/trial chats;
// guest messages are never scored.
const GuestPersonaID uint = 0

// Chat message roles.
const (
	RoleUser      = "USER"
	RoleCharacter = "CHARACTER"
)

// Favor scoring constants. The cadence window and the hour-of-day bonus
// window are tuned values carried over from production.
const (
	FavorDeltaMin = -5
	FavorDeltaMax = 15

	CadenceWindowHours    = 24
	CadenceMessageWindow  = 10 // how many recent user messages to inspect
	CadenceMinMessages    = 3  // messages inside the window to count as consecutive
	ActiveHourStart       = 9
	ActiveHourEnd         = 23
	ConsecutiveBonusMax   = 5
	EmojiBonusMax         = 3
	PositiveKeywordPoints = 2
	NegativeKeywordPoints = -1
)

// Relationship stages, derived from favor breakpoints. Labels are always
// recomputed, never stored.
const (
	StageAcquaintance = "ACQUAINTANCE"
	StageFriend       = "FRIEND"
	StageCrush        = "CRUSH"
	StageLover        = "LOVER"
	StageMarriage     = "MARRIAGE"
)

const (
	StageFriendFavor   = 100
	StageCrushFavor    = 500
	StageLoverFavor    = 1000
	StageMarriageFavor = 5000
)

// StageFor returns the relationship stage label for a favor score.
func StageFor(favor int) string {
	switch {
	case favor >= StageMarriageFavor:
		return StageMarriage
	case favor >= StageLoverFavor:
		return StageLover
	case favor >= StageCrushFavor:
		return StageCrush
	case favor >= StageFriendFavor:
		return StageFriend
	default:
		return StageAcquaintance
	}
}
