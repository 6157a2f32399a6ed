package discord

// User-facing reply texts.
const (
	replyBadFormat   = "❌ Invalid format."
	replyOffsetFmt   = "✅ Timezone saved (UTC%s)"
	replyBirthdayFmt = "🎉 Birthday saved as %s"
	replyNoTZFmt     = "❌ %s has not set timezone."
	replyTimeFmt     = "🕒 %s's time: %s (UTC%s)"
	replyInternal    = "Something went wrong. Please try again later."

	announceFmt = "🎉 HAPPY BIRTHDAY %s! 🎉"
)
